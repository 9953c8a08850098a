package workers

import (
	"context"
	"time"

	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/repositories"
)

const stalePendingAge = 72 * time.Hour

// OrderWorker sweeps orders that were created but never paid. A PENDING
// order whose payment is still PENDING after 72 hours gets cancelled.
type OrderWorker struct {
	orderRepo repositories.OrderRepository
	interval  time.Duration
}

func NewOrderWorker(orderRepo repositories.OrderRepository) *OrderWorker {
	return &OrderWorker{
		orderRepo: orderRepo,
		interval:  time.Hour,
	}
}

func (w *OrderWorker) Start(ctx context.Context) {
	logger.Info("order worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("order worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *OrderWorker) sweep() {
	cancelled, err := w.orderRepo.CancelStalePending(time.Now().Add(-stalePendingAge))
	logger.WorkerLog("order", "cancel_stale_pending", err)
	if err == nil && cancelled > 0 {
		logger.Info("stale pending orders cancelled", "count", cancelled)
	}
}
