package workers

import (
	"context"
	"time"
)

// ReviewPurgeWorker периодически удаляет отзывы, отклоненные более суток назад
type ReviewPurgeWorker struct {
	reviews  ReviewPurger
	interval time.Duration
	logger   Logger
	now      func() time.Time
}

func NewReviewPurgeWorker(reviews ReviewPurger, interval time.Duration, logger Logger) *ReviewPurgeWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReviewPurgeWorker{
		reviews:  reviews,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run блокируется до отмены ctx; первый проход сразу после старта
func (w *ReviewPurgeWorker) Run(ctx context.Context) {
	w.logger.Info("ReviewPurgeWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.RunOnce(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("ReviewPurgeWorker: stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce один проход очистки
func (w *ReviewPurgeWorker) RunOnce(ctx context.Context) {
	deleted, err := w.reviews.PurgeRejected(ctx, w.now())
	if err != nil {
		w.logger.Error("ReviewPurgeWorker: purge failed: %v", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("ReviewPurgeWorker: %d rejected review(s) deleted", deleted)
	}
}
