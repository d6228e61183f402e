package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
)

func newTestDeadlineWorker() (*DeadlineWorker, *memStore, *memNotifier) {
	clock := func() time.Time { return testClock }
	store := newMemStore(clock)
	notifier := &memNotifier{}
	worker := NewDeadlineWorker(store, notifier, time.Hour)
	worker.now = clock
	return worker, store, notifier
}

func addPayLaterInvestment(store *memStore, userID, pkgID int64, status model.InvestmentStatus, paid int64) *model.Investment {
	pkg := store.packages[pkgID]
	inv := &model.Investment{
		ID:             uuid.New(),
		UserID:         userID,
		PackageID:      pkgID,
		PaymentMode:    model.PaymentModePayLater,
		AmountInvested: pkg.Amount,
		AmountPaid:     paid,
		Status:         status,
	}
	store.investments[inv.ID] = inv
	return inv
}

func TestMissedInitialPaymentBlocksFirstTimer(t *testing.T) {
	worker, store, notifier := newTestDeadlineWorker()
	store.addPackage(1, 10000, 1500)
	store.addUser(1, nil)

	inv := addPayLaterInvestment(store, 1, 1, model.InvestmentStatusPending, 0)
	deadline := testClock.Add(-time.Minute)
	inv.InitialPaymentDeadline = &deadline

	report, err := worker.EnforceDeadlines(context.Background())
	if err != nil {
		t.Fatalf("EnforceDeadlines: %v", err)
	}
	if report.Blocked != 1 || report.Cancelled != 0 || report.Reset != 0 {
		t.Fatalf("expected 1 blocked only, got %+v", report)
	}

	user, _ := store.GetUser(context.Background(), 1)
	if !user.Blocked {
		t.Fatal("first-timer who misses the initial payment must be blocked")
	}
	// The investment is left pending so it can resume after an unblock.
	if got := store.investment(inv.ID); got.Status != model.InvestmentStatusPending {
		t.Fatalf("expected investment left pending, got %s", got.Status)
	}

	sent := notifier.byType(model.NotificationAccountBlocked)
	if len(sent) != 1 || sent[0].UserID != 1 || sent[0].Priority != model.PriorityHigh {
		t.Fatalf("expected one high-priority block notification, got %+v", sent)
	}
}

func TestMissedInitialPaymentCancelsWithTrackRecord(t *testing.T) {
	worker, store, notifier := newTestDeadlineWorker()
	store.addPackage(1, 10000, 1500)
	store.addUser(1, nil)

	// An earlier completed investment is the track record.
	addPayLaterInvestment(store, 1, 1, model.InvestmentStatusCompleted, 10000)

	inv := addPayLaterInvestment(store, 1, 1, model.InvestmentStatusPending, 0)
	deadline := testClock.Add(-time.Minute)
	inv.InitialPaymentDeadline = &deadline

	report, err := worker.EnforceDeadlines(context.Background())
	if err != nil {
		t.Fatalf("EnforceDeadlines: %v", err)
	}
	if report.Cancelled != 1 || report.Blocked != 0 {
		t.Fatalf("expected 1 cancelled, got %+v", report)
	}

	user, _ := store.GetUser(context.Background(), 1)
	if user.Blocked {
		t.Fatal("a user with settled investments must not be blocked")
	}
	if got := store.investment(inv.ID); got.Status != model.InvestmentStatusCancelled {
		t.Fatalf("expected cancelled investment, got %s", got.Status)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("cancellation must be silent, got %+v", notifier.sent)
	}
}

func TestMissedFullPaymentResetsInvestment(t *testing.T) {
	worker, store, notifier := newTestDeadlineWorker()
	store.addPackage(1, 10000, 1500)
	store.addUser(1, nil)

	inv := addPayLaterInvestment(store, 1, 1, model.InvestmentStatusActive, 4000)
	start := testClock.Add(-15 * 24 * time.Hour)
	inv.StartDate = &start
	deadline := testClock.Add(-time.Hour)
	inv.FullPaymentDeadline = &deadline

	report, err := worker.EnforceDeadlines(context.Background())
	if err != nil {
		t.Fatalf("EnforceDeadlines: %v", err)
	}
	if report.Reset != 1 || report.Blocked != 0 || report.Cancelled != 0 {
		t.Fatalf("expected 1 reset only, got %+v", report)
	}

	got := store.investment(inv.ID)
	if got.Status != model.InvestmentStatusPending {
		t.Fatalf("expected reset to pending, got %s", got.Status)
	}
	if got.AmountPaid != 0 || got.StartDate != nil {
		t.Fatalf("reset must clear payments and start date, got paid=%d start=%v", got.AmountPaid, got.StartDate)
	}

	sent := notifier.byType(model.NotificationPaymentDeadlineMissed)
	if len(sent) != 1 || sent[0].UserID != 1 || sent[0].Priority != model.PriorityHigh {
		t.Fatalf("expected one high-priority reset notification, got %+v", sent)
	}
}

func TestNoDeadlinesNothingHappens(t *testing.T) {
	worker, store, notifier := newTestDeadlineWorker()
	store.addPackage(1, 10000, 1500)
	store.addUser(1, nil)

	inv := addPayLaterInvestment(store, 1, 1, model.InvestmentStatusPending, 0)
	deadline := testClock.Add(time.Hour)
	inv.InitialPaymentDeadline = &deadline

	report, err := worker.EnforceDeadlines(context.Background())
	if err != nil {
		t.Fatalf("EnforceDeadlines: %v", err)
	}
	if report != (DeadlineReport{}) {
		t.Fatalf("future deadlines must be untouched, got %+v", report)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notifications, got %+v", notifier.sent)
	}
}
