package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"swap24.backend/internal/domain/entities"
)

// TxJournalRepository persists the local record of submitted chain writes.
type TxJournalRepository interface {
	Create(ctx context.Context, entry *entities.JournalEntry) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JournalStatus) error
	SetAdID(ctx context.Context, id uuid.UUID, adID int64) error
	GetByTxHash(ctx context.Context, txHash string) (*entities.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.JournalEntry, int64, error)
	ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]*entities.JournalEntry, error)
	MarkAbandoned(ctx context.Context, ids []uuid.UUID) error
}
