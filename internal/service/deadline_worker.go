package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dailyvest/backend/internal/model"
)

type DeadlineReport struct {
	Cancelled int `json:"cancelled"`
	Blocked   int `json:"blocked"`
	Reset     int `json:"reset"`
}

// DeadlineWorker enforces the pay-later payment deadlines: the 3-hour
// initial payment window and the 14-day full payment window.
type DeadlineWorker struct {
	store    Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

func NewDeadlineWorker(store Store, notifier Notifier, interval time.Duration) *DeadlineWorker {
	return &DeadlineWorker{
		store:    store,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the background loop and blocks until ctx is cancelled.
func (w *DeadlineWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("[Deadline Worker] Started, running every %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Deadline Worker] Stopped")
			return
		case <-ticker.C:
			if _, err := w.EnforceDeadlines(ctx); err != nil {
				log.Printf("[Deadline Worker] Run failed: %v", err)
			}
		}
	}
}

// EnforceDeadlines runs both passes. A user who misses the initial payment
// on their very first investment is blocked until an admin unblocks them;
// a user with a track record just has the investment cancelled. Missing
// the full-payment deadline resets the investment so full payment must
// restart.
func (w *DeadlineWorker) EnforceDeadlines(ctx context.Context) (DeadlineReport, error) {
	var report DeadlineReport
	now := w.now()

	missedInitial, err := w.store.FindMissedInitialPayments(ctx, now)
	if err != nil {
		return report, fmt.Errorf("failed to find missed initial payments: %w", err)
	}

	for i := range missedInitial {
		inv := &missedInitial[i]

		settled, err := w.store.CountSettledInvestments(ctx, inv.UserID)
		if err != nil {
			log.Printf("[Deadline Worker] Failed to count investments for user %d: %v", inv.UserID, err)
			continue
		}

		if settled == 0 {
			if err := w.store.SetUserBlocked(ctx, inv.UserID, true); err != nil {
				log.Printf("[Deadline Worker] Failed to block user %d: %v", inv.UserID, err)
				continue
			}
			_ = w.notifier.Notify(ctx, inv.UserID, model.NotificationAccountBlocked,
				"Account Blocked",
				"Your account has been blocked due to missed initial payment deadline.",
				model.PriorityHigh)
			report.Blocked++
			continue
		}

		if err := w.store.CancelInvestment(ctx, inv.ID); err != nil {
			log.Printf("[Deadline Worker] Failed to cancel investment %s: %v", inv.ID, err)
			continue
		}
		report.Cancelled++
	}

	missedFull, err := w.store.FindMissedFullPayments(ctx, now)
	if err != nil {
		return report, fmt.Errorf("failed to find missed full payments: %w", err)
	}

	for i := range missedFull {
		inv := &missedFull[i]

		if err := w.store.ResetInvestment(ctx, inv.ID); err != nil {
			log.Printf("[Deadline Worker] Failed to reset investment %s: %v", inv.ID, err)
			continue
		}

		message := fmt.Sprintf("Your 14-day payment deadline for investment #%s has been missed. Full payment is now required.", inv.ID)
		_ = w.notifier.Notify(ctx, inv.UserID, model.NotificationPaymentDeadlineMissed,
			"Payment Deadline Missed", message, model.PriorityHigh)
		report.Reset++
	}

	if report.Cancelled+report.Blocked+report.Reset > 0 {
		log.Printf("[Deadline Worker] Cancelled %d, blocked %d, reset %d", report.Cancelled, report.Blocked, report.Reset)
	}
	return report, nil
}
