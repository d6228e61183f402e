package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
)

// memStore is an in-memory Store used to run the services and workers
// synchronously in tests. It reproduces the repository's conditional-update
// semantics (guarded activation, daily-return claim, overpayment check).
type memStore struct {
	mu           sync.Mutex
	now          func() time.Time
	packages     map[int64]*model.InvestmentPackage
	users        map[int64]*model.User
	wallets      map[int64]*model.Wallet
	investments  map[uuid.UUID]*model.Investment
	transactions []model.Transaction
	bonuses      []model.ReferralBonus

	failBalanceFor map[int64]bool // inject wallet failures per user
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		now:            now,
		packages:       make(map[int64]*model.InvestmentPackage),
		users:          make(map[int64]*model.User),
		wallets:        make(map[int64]*model.Wallet),
		investments:    make(map[uuid.UUID]*model.Investment),
		failBalanceFor: make(map[int64]bool),
	}
}

func (m *memStore) addPackage(id, amount, dailyReturn int64) *model.InvestmentPackage {
	pkg := &model.InvestmentPackage{ID: id, Amount: amount, DailyReturn: dailyReturn, DurationDays: 30, Active: true}
	m.packages[id] = pkg
	return pkg
}

func (m *memStore) addUser(id int64, referredBy *int64) *model.User {
	user := &model.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id), ReferralCode: fmt.Sprintf("CODE%d", id), ReferredBy: referredBy}
	m.users[id] = user
	m.wallets[id] = &model.Wallet{ID: id, UserID: id}
	return user
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (m *memStore) GetActivePackage(_ context.Context, id int64) (*model.InvestmentPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pkg, ok := m.packages[id]
	if !ok || !pkg.Active {
		return nil, repository.ErrPackageNotFound
	}
	cp := *pkg
	return &cp, nil
}

func (m *memStore) ListActivePackages(_ context.Context) ([]model.InvestmentPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.InvestmentPackage
	for _, pkg := range m.packages {
		if pkg.Active {
			out = append(out, *pkg)
		}
	}
	return out, nil
}

func (m *memStore) CreateInvestment(_ context.Context, inv *model.Investment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv.ID = uuid.New()
	inv.Status = model.InvestmentStatusPending
	inv.CreatedAt = m.now()
	cp := *inv
	m.investments[inv.ID] = &cp
	return nil
}

func (m *memStore) GetUserInvestment(_ context.Context, id uuid.UUID, userID int64) (*model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok || inv.UserID != userID {
		return nil, repository.ErrInvestmentNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memStore) ListUserInvestments(_ context.Context, userID int64) ([]model.InvestmentWithPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.InvestmentWithPackage
	for _, inv := range m.investments {
		if inv.UserID != userID {
			continue
		}
		pkg := m.packages[inv.PackageID]
		out = append(out, model.InvestmentWithPackage{Investment: *inv, DailyReturn: pkg.DailyReturn, DurationDays: pkg.DurationDays})
	}
	return out, nil
}

func (m *memStore) AddInvestmentPayment(_ context.Context, id uuid.UUID, delta int64) (*model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok || inv.AmountPaid+delta > inv.AmountInvested {
		return nil, repository.ErrOverpayment
	}
	inv.AmountPaid += delta
	cp := *inv
	return &cp, nil
}

func (m *memStore) ActivateInvestment(_ context.Context, id uuid.UUID) (*model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok || inv.Status != model.InvestmentStatusPending || inv.AmountPaid < inv.AmountInvested {
		return nil, nil
	}
	inv.Status = model.InvestmentStatusActive
	if inv.StartDate == nil {
		start := m.now()
		inv.StartDate = &start
	}
	cp := *inv
	return &cp, nil
}

func (m *memStore) ClaimDailyReturn(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok || inv.Status != model.InvestmentStatusActive {
		return false, nil
	}
	now := m.now()
	if inv.LastReturnProcessed != nil && sameDay(*inv.LastReturnProcessed, now) {
		return false, nil
	}
	inv.LastReturnProcessed = &now
	return true, nil
}

func (m *memStore) CompleteInvestment(_ context.Context, id uuid.UUID, endDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.investments[id]
	if !ok || inv.Status != model.InvestmentStatusActive {
		return repository.ErrInvestmentNotFound
	}
	inv.Status = model.InvestmentStatusCompleted
	inv.EndDate = &endDate
	return nil
}

func (m *memStore) CancelInvestment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv, ok := m.investments[id]; ok && inv.Status == model.InvestmentStatusPending {
		inv.Status = model.InvestmentStatusCancelled
	}
	return nil
}

func (m *memStore) ResetInvestment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv, ok := m.investments[id]; ok {
		inv.Status = model.InvestmentStatusPending
		inv.AmountPaid = 0
		inv.StartDate = nil
	}
	return nil
}

func (m *memStore) FindAccruableInvestments(_ context.Context) ([]model.InvestmentWithPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var out []model.InvestmentWithPackage
	for _, inv := range m.investments {
		if inv.Status != model.InvestmentStatusActive || inv.StartDate == nil {
			continue
		}
		if inv.StartDate.After(now) && !sameDay(*inv.StartDate, now) {
			continue
		}
		if inv.LastReturnProcessed != nil && sameDay(*inv.LastReturnProcessed, now) {
			continue
		}
		pkg := m.packages[inv.PackageID]
		out = append(out, model.InvestmentWithPackage{Investment: *inv, DailyReturn: pkg.DailyReturn, DurationDays: pkg.DurationDays})
	}
	return out, nil
}

func (m *memStore) FindMissedInitialPayments(_ context.Context, now time.Time) ([]model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Investment
	for _, inv := range m.investments {
		if inv.PaymentMode == model.PaymentModePayLater &&
			inv.AmountPaid == 0 &&
			inv.Status == model.InvestmentStatusPending &&
			inv.InitialPaymentDeadline != nil && inv.InitialPaymentDeadline.Before(now) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *memStore) FindMissedFullPayments(_ context.Context, now time.Time) ([]model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Investment
	for _, inv := range m.investments {
		if inv.PaymentMode == model.PaymentModePayLater &&
			inv.AmountPaid < inv.AmountInvested &&
			inv.Status == model.InvestmentStatusActive &&
			inv.FullPaymentDeadline != nil && inv.FullPaymentDeadline.Before(now) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (m *memStore) CountSettledInvestments(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, inv := range m.investments {
		if inv.UserID == userID &&
			(inv.Status == model.InvestmentStatusActive || inv.Status == model.InvestmentStatusCompleted) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memStore) SetUserBlocked(_ context.Context, id int64, blocked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Blocked = blocked
	return nil
}

func (m *memStore) GetWallet(_ context.Context, userID int64) (*model.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return nil, repository.ErrWalletNotFound
	}
	cp := *wallet
	return &cp, nil
}

func (m *memStore) UpdateWalletBalance(_ context.Context, userID int64, amount int64, txType model.TransactionType, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failBalanceFor[userID] {
		return fmt.Errorf("injected wallet failure for user %d", userID)
	}
	wallet, ok := m.wallets[userID]
	if !ok {
		return repository.ErrWalletNotFound
	}
	if amount < 0 && wallet.Balance+amount < 0 {
		return repository.ErrInsufficientFunds
	}
	wallet.Balance += amount
	m.transactions = append(m.transactions, model.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Status:      model.TransactionStatusCompleted,
		CreatedAt:   m.now(),
	})
	return nil
}

func (m *memStore) UpdateWalletPoints(_ context.Context, userID int64, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return repository.ErrWalletNotFound
	}
	if delta < 0 && wallet.Points+delta < 0 {
		return repository.ErrInsufficientPoints
	}
	wallet.Points += delta
	return nil
}

func (m *memStore) AppendTransaction(_ context.Context, t *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.New()
	t.Status = model.TransactionStatusCompleted
	t.CreatedAt = m.now()
	m.transactions = append(m.transactions, *t)
	return nil
}

func (m *memStore) CreateReferralBonus(_ context.Context, bonus *model.ReferralBonus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bonuses {
		if existing.ReferrerID == bonus.ReferrerID &&
			existing.InvestmentID == bonus.InvestmentID &&
			existing.Class == bonus.Class {
			return false, nil
		}
	}
	bonus.ID = uuid.New()
	bonus.CreatedAt = m.now()
	m.bonuses = append(m.bonuses, *bonus)
	return true, nil
}

func (m *memStore) userTransactions(userID int64, txType model.TransactionType) []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID && (txType == "" || t.Type == txType) {
			out = append(out, t)
		}
	}
	return out
}

func (m *memStore) investment(id uuid.UUID) model.Investment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.investments[id]
}

// memNotifier records notifications instead of delivering them.
type memNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (n *memNotifier) Notify(_ context.Context, userID int64, typ model.NotificationType, title, message string, priority model.NotificationPriority) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, model.Notification{UserID: userID, Type: typ, Title: title, Message: message, Priority: priority})
	return nil
}

func (n *memNotifier) byType(typ model.NotificationType) []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.Notification
	for _, sent := range n.sent {
		if sent.Type == typ {
			out = append(out, sent)
		}
	}
	return out
}
