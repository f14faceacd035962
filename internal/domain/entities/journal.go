package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// JournalStatus tracks a submitted chain write through its confirmation.
type JournalStatus string

const (
	JournalStatusPending   JournalStatus = "pending"
	JournalStatusConfirmed JournalStatus = "confirmed"
	JournalStatusFailed    JournalStatus = "failed"
	JournalStatusAbandoned JournalStatus = "abandoned"
)

// JournalKind is the chain operation a journal entry records.
type JournalKind string

const (
	JournalKindAdCreation     JournalKind = "adCreation"
	JournalKindAdCancellation JournalKind = "adCancellation"
	JournalKindApproval       JournalKind = "approval"
)

// JournalEntry is the local record of one submitted transaction. Once a tx
// is on the wire it cannot be recalled; the journal is what lets a caller
// abandon a confirmation wait without resubmitting, and what the sweeper
// uses to retire writes nobody is waiting on anymore.
type JournalEntry struct {
	ID            uuid.UUID     `json:"id"`
	UserID        string        `json:"userId"`
	WalletAddress string        `json:"walletAddress"`
	Kind          JournalKind   `json:"kind"`
	Asset         string        `json:"asset"`
	BaseAmount    string        `json:"baseAmount"`
	TxHash        string        `json:"txHash"`
	AdID          null.Int64    `json:"adId"`
	Status        JournalStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
