package workers

import (
	"context"
	"time"

	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/repositories"
)

// CommissionWorker cancels commission requests the vendor never answered
// before their deadline passed.
type CommissionWorker struct {
	commissionRepo repositories.CommissionRepository
	interval       time.Duration
}

func NewCommissionWorker(commissionRepo repositories.CommissionRepository) *CommissionWorker {
	return &CommissionWorker{
		commissionRepo: commissionRepo,
		interval:       time.Hour,
	}
}

func (w *CommissionWorker) Start(ctx context.Context) {
	logger.Info("commission worker started", "interval", w.interval.String())
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("commission worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CommissionWorker) sweep() {
	cancelled, err := w.commissionRepo.CancelExpiredRequests(time.Now())
	logger.WorkerLog("commission", "cancel_expired_requests", err)
	if err == nil && cancelled > 0 {
		logger.Info("expired commission requests cancelled", "count", cancelled)
	}
}
