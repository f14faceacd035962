package repositories

import (
	"context"
	"math/big"

	"swap24.backend/internal/domain/entities"
)

// MarketGateway is the marketplace contract boundary: full-table reads,
// the two vendor writes, and the confirmation wait. Write methods return
// the submitted transaction hash; once returned, the tx is on the wire and
// cannot be recalled.
type MarketGateway interface {
	GetAllAds(ctx context.Context) ([]*entities.Ad, error)
	CreateAd(ctx context.Context, input *entities.ChainAdInput) (string, error)
	CancelAd(ctx context.Context, adID int64) (string, error)
	WaitMined(ctx context.Context, txHash string) (*entities.TxOutcome, error)
	MarketAddress() string
	SignerAddress() string
}

// TokenGateway is the ERC-20 boundary used by the allowance gate.
type TokenGateway interface {
	Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error)
	Approve(ctx context.Context, token, spender string, amount *big.Int) (string, error)
	Decimals(ctx context.Context, token string) (int32, error)
}

// MirrorClient is the backend record-keeping boundary. Writes happen only
// after a confirmed chain write and are never the authority: a failure here
// is surfaced as a warning, never as a rollback.
type MirrorClient interface {
	AddTransaction(ctx context.Context, record *entities.TransactionRecord) error
	AddAd(ctx context.Context, record *entities.AdRecord) error
	ListAds(ctx context.Context) ([]*entities.Ad, error)
}
