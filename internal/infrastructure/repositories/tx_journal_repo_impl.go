package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/internal/infrastructure/models"
)

// TxJournalRepositoryImpl implements TxJournalRepository
type TxJournalRepositoryImpl struct {
	db *gorm.DB
}

func NewTxJournalRepository(db *gorm.DB) *TxJournalRepositoryImpl {
	return &TxJournalRepositoryImpl{db: db}
}

func (r *TxJournalRepositoryImpl) Create(ctx context.Context, entry *entities.JournalEntry) error {
	m := &models.TxJournalEntry{
		ID:            entry.ID,
		UserID:        entry.UserID,
		WalletAddress: entry.WalletAddress,
		Kind:          string(entry.Kind),
		Asset:         entry.Asset,
		BaseAmount:    entry.BaseAmount,
		TxHash:        entry.TxHash,
		AdID:          entry.AdID,
		Status:        string(entry.Status),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *TxJournalRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JournalStatus) error {
	return r.db.WithContext(ctx).Model(&models.TxJournalEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *TxJournalRepositoryImpl) SetAdID(ctx context.Context, id uuid.UUID, adID int64) error {
	return r.db.WithContext(ctx).Model(&models.TxJournalEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ad_id":      adID,
			"updated_at": time.Now(),
		}).Error
}

func (r *TxJournalRepositoryImpl) GetByTxHash(ctx context.Context, txHash string) (*entities.JournalEntry, error) {
	var m models.TxJournalEntry
	if err := r.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TxJournalRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.JournalEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.TxJournalEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ms []models.TxJournalEntry
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var entries []*entities.JournalEntry
	for _, m := range ms {
		model := m
		entries = append(entries, r.toEntity(&model))
	}
	return entries, total, nil
}

func (r *TxJournalRepositoryImpl) ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]*entities.JournalEntry, error) {
	cutoff := time.Now().Add(-age)

	var ms []models.TxJournalEntry
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", entities.JournalStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var entries []*entities.JournalEntry
	for _, m := range ms {
		model := m
		entries = append(entries, r.toEntity(&model))
	}
	return entries, nil
}

func (r *TxJournalRepositoryImpl) MarkAbandoned(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.TxJournalEntry{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     entities.JournalStatusAbandoned,
			"updated_at": time.Now(),
		}).Error
}

func (r *TxJournalRepositoryImpl) toEntity(m *models.TxJournalEntry) *entities.JournalEntry {
	return &entities.JournalEntry{
		ID:            m.ID,
		UserID:        m.UserID,
		WalletAddress: m.WalletAddress,
		Kind:          entities.JournalKind(m.Kind),
		Asset:         m.Asset,
		BaseAmount:    m.BaseAmount,
		TxHash:        m.TxHash,
		AdID:          m.AdID,
		Status:        entities.JournalStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
