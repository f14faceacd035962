package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/pkg/logger"
)

type journalSweeperRepo interface {
	ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]*entities.JournalEntry, error)
	MarkAbandoned(ctx context.Context, ids []uuid.UUID) error
}

// JournalSweeperJob retires journal entries stuck in pending. A wait that was
// abandoned (or a server that crashed mid-wait) leaves the entry pending even
// though the tx itself settled on chain long ago.
type JournalSweeperJob struct {
	repo     journalSweeperRepo
	maxAge   time.Duration
	interval time.Duration
	stop     chan struct{}
}

func NewJournalSweeperJob(repo journalSweeperRepo, maxAge time.Duration) *JournalSweeperJob {
	return &JournalSweeperJob{
		repo:     repo,
		maxAge:   maxAge,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *JournalSweeperJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting tx journal sweeper", zap.Duration("max_age", j.maxAge))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "tx journal sweeper stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "tx journal sweeper stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *JournalSweeperJob) Stop() {
	close(j.stop)
}

func (j *JournalSweeperJob) sweep(ctx context.Context) {
	stale, err := j.repo.ListPendingOlderThan(ctx, j.maxAge, 100)
	if err != nil {
		logger.Error(ctx, "failed to list stale journal entries", zap.Error(err))
		return
	}

	if len(stale) == 0 {
		return
	}

	var ids []uuid.UUID
	for _, entry := range stale {
		ids = append(ids, entry.ID)
	}

	if err := j.repo.MarkAbandoned(ctx, ids); err != nil {
		logger.Error(ctx, "failed to abandon stale journal entries", zap.Error(err))
		return
	}

	logger.Info(ctx, "abandoned stale journal entries", zap.Int("count", len(ids)))
}
