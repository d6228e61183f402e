package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
)

// seedChain builds users 1..depth+1 where user 1 is referred by 2, 2 by 3,
// and so on; the last user has no referrer.
func seedChain(store *memStore, depth int) {
	var prev *int64
	for id := int64(depth + 1); id >= 1; id-- {
		referredBy := prev
		store.addUser(id, referredBy)
		idCopy := id
		prev = &idCopy
	}
}

func activationFor(userID, amount int64) *model.Investment {
	start := testClock
	return &model.Investment{
		ID:             uuid.New(),
		UserID:         userID,
		AmountInvested: amount,
		Status:         model.InvestmentStatusActive,
		StartDate:      &start,
	}
}

func TestCommissionThreeLevelChain(t *testing.T) {
	store := newMemStore(func() time.Time { return testClock })
	seedChain(store, 3)
	svc := NewCommissionService(store)

	inv := activationFor(1, 10000)
	if err := svc.ProcessActivation(context.Background(), inv); err != nil {
		t.Fatalf("ProcessActivation: %v", err)
	}

	if len(store.bonuses) != 3 {
		t.Fatalf("expected 3 bonus rows, got %d", len(store.bonuses))
	}

	want := []struct {
		referrer   int64
		class      model.ReferralClass
		percentage float64
		amount     int64
	}{
		{2, model.ReferralClassA, 0.07, 700},
		{3, model.ReferralClassB, 0.02, 200},
		{4, model.ReferralClassC, 0.01, 100},
	}
	for i, expect := range want {
		bonus := store.bonuses[i]
		if bonus.ReferrerID != expect.referrer || bonus.Class != expect.class ||
			bonus.Percentage != expect.percentage || bonus.Amount != expect.amount {
			t.Fatalf("bonus %d mismatch: %+v", i, bonus)
		}
		if bonus.ReferredID != 1 || bonus.InvestmentID != inv.ID {
			t.Fatalf("bonus %d must reference investor and investment, got %+v", i, bonus)
		}

		wallet, _ := store.GetWallet(context.Background(), expect.referrer)
		if wallet.Balance != expect.amount {
			t.Fatalf("referrer %d expected balance %d, got %d", expect.referrer, expect.amount, wallet.Balance)
		}
		txs := store.userTransactions(expect.referrer, model.TransactionTypeBonus)
		if len(txs) != 1 || txs[0].Amount != expect.amount {
			t.Fatalf("referrer %d expected one bonus transaction of %d, got %+v", expect.referrer, expect.amount, txs)
		}
	}
}

func TestCommissionStopsAtChainEnd(t *testing.T) {
	store := newMemStore(func() time.Time { return testClock })
	seedChain(store, 1) // only a direct referrer exists
	svc := NewCommissionService(store)

	if err := svc.ProcessActivation(context.Background(), activationFor(1, 50000)); err != nil {
		t.Fatalf("ProcessActivation: %v", err)
	}

	if len(store.bonuses) != 1 {
		t.Fatalf("expected 1 bonus row for a 1-level chain, got %d", len(store.bonuses))
	}
	if store.bonuses[0].Class != model.ReferralClassA || store.bonuses[0].Amount != 3500 {
		t.Fatalf("unexpected class A bonus: %+v", store.bonuses[0])
	}
}

func TestCommissionNoReferrer(t *testing.T) {
	store := newMemStore(func() time.Time { return testClock })
	store.addUser(1, nil)
	svc := NewCommissionService(store)

	if err := svc.ProcessActivation(context.Background(), activationFor(1, 10000)); err != nil {
		t.Fatalf("ProcessActivation: %v", err)
	}
	if len(store.bonuses) != 0 {
		t.Fatalf("expected no bonuses without a referrer, got %d", len(store.bonuses))
	}
}

func TestCommissionRerunDoesNotDoublePay(t *testing.T) {
	store := newMemStore(func() time.Time { return testClock })
	seedChain(store, 3)
	svc := NewCommissionService(store)

	inv := activationFor(1, 10000)
	if err := svc.ProcessActivation(context.Background(), inv); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.ProcessActivation(context.Background(), inv); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(store.bonuses) != 3 {
		t.Fatalf("rerun must not add bonus rows, got %d", len(store.bonuses))
	}
	wallet, _ := store.GetWallet(context.Background(), 2)
	if wallet.Balance != 700 {
		t.Fatalf("rerun must not double-pay, class A balance %d", wallet.Balance)
	}
}
