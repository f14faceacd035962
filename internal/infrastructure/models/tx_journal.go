package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type TxJournalEntry struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        string     `gorm:"type:varchar(255);not null;index"`
	WalletAddress string     `gorm:"type:varchar(255);not null;index"`
	Kind          string     `gorm:"type:varchar(50);not null"`
	Asset         string     `gorm:"type:varchar(50);not null"`
	BaseAmount    string     `gorm:"type:varchar(100);not null"`
	TxHash        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	AdID          null.Int64 `gorm:"column:ad_id"`
	Status        string     `gorm:"type:varchar(50);not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TxJournalEntry) TableName() string {
	return "tx_journal"
}
