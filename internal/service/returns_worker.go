package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dailyvest/backend/internal/model"
)

// ReturnsWorker credits daily investment returns and completes investments
// that have run their full duration. It runs on a fixed interval; each run
// is also callable synchronously via ProcessDailyReturns.
type ReturnsWorker struct {
	store    Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

func NewReturnsWorker(store Store, notifier Notifier, interval time.Duration) *ReturnsWorker {
	return &ReturnsWorker{
		store:    store,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the background loop and blocks until ctx is cancelled.
func (w *ReturnsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("[Returns Worker] Started, running every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Returns Worker] Stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessDailyReturns(ctx); err != nil {
				log.Printf("[Returns Worker] Run failed: %v", err)
			}
		}
	}
}

// ProcessDailyReturns handles every eligible active investment once. An
// investment within its duration gets one wallet credit per calendar day;
// one past its duration is completed. A failure on one investment does not
// stop the rest of the batch.
func (w *ReturnsWorker) ProcessDailyReturns(ctx context.Context) (int, error) {
	investments, err := w.store.FindAccruableInvestments(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find accruable investments: %w", err)
	}

	now := w.now()
	processed := 0

	for i := range investments {
		inv := &investments[i]

		if inv.DaysSinceStart(now) < inv.DurationDays {
			if w.creditReturn(ctx, inv) {
				processed++
			}
			continue
		}

		if err := w.store.CompleteInvestment(ctx, inv.ID, now); err != nil {
			log.Printf("[Returns Worker] Failed to complete investment %s: %v", inv.ID, err)
			continue
		}

		message := fmt.Sprintf("Your R%d investment has completed its %d-day cycle.",
			inv.AmountInvested/100, inv.DurationDays)
		_ = w.notifier.Notify(ctx, inv.UserID, model.NotificationInvestmentCompleted,
			"Investment Completed", message, model.PriorityMedium)
		processed++
	}

	if processed > 0 {
		log.Printf("[Returns Worker] Processed returns for %d investments", processed)
	}
	return processed, nil
}

// creditReturn claims today's slot before paying. The claim is the
// idempotency gate: a rerun within the same calendar day finds the slot
// taken and does nothing.
func (w *ReturnsWorker) creditReturn(ctx context.Context, inv *model.InvestmentWithPackage) bool {
	claimed, err := w.store.ClaimDailyReturn(ctx, inv.ID)
	if err != nil {
		log.Printf("[Returns Worker] Failed to claim daily return for %s: %v", inv.ID, err)
		return false
	}
	if !claimed {
		return false
	}

	description := fmt.Sprintf("Daily return for investment #%s", inv.ID)
	if err := w.store.UpdateWalletBalance(ctx, inv.UserID, inv.DailyReturn, model.TransactionTypeDailyReturn, description); err != nil {
		log.Printf("[Returns Worker] Failed to credit daily return for %s: %v", inv.ID, err)
		return false
	}
	return true
}
