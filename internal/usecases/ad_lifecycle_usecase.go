package usecases

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"swap24.backend/internal/domain/entities"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/domain/repositories"
	"swap24.backend/pkg/convert"
	"swap24.backend/pkg/logger"
)

// AdLifecycleUsecase drives the two vendor writes against the marketplace
// contract: posting an ad and cancelling one. Both walk the same shape:
// validate locally, clear the allowance gate when an ERC-20 is involved,
// submit, journal the submission, wait for the mined receipt, then mirror
// the confirmed outcome to the backend.
type AdLifecycleUsecase struct {
	market  repositories.MarketGateway
	gate    *AllowanceGate
	mirror  repositories.MirrorClient
	journal repositories.TxJournalRepository
	catalog entities.TokenCatalog
}

// NewAdLifecycleUsecase creates a new ad lifecycle usecase
func NewAdLifecycleUsecase(
	market repositories.MarketGateway,
	gate *AllowanceGate,
	mirror repositories.MirrorClient,
	journal repositories.TxJournalRepository,
	catalog entities.TokenCatalog,
) *AdLifecycleUsecase {
	return &AdLifecycleUsecase{
		market:  market,
		gate:    gate,
		mirror:  mirror,
		journal: journal,
		catalog: catalog,
	}
}

// CreateAd validates and posts a new ad. The returned result always carries
// the tx hash of the confirmed creation; AdID is null when the AdCreated
// event could not be decoded from the receipt, and MirrorWarning is set when
// the backend mirror write failed after the chain write was already final.
func (u *AdLifecycleUsecase) CreateAd(ctx context.Context, identity entities.Identity, input *entities.PostAdInput) (*entities.CreateAdResult, error) {
	if !identity.WalletConnected() {
		return nil, domainerrors.WalletNotConnected()
	}

	token, ok := u.catalog.BySymbol(input.TokenSymbol)
	if !ok {
		return nil, domainerrors.Validation("token", "unsupported token")
	}

	baseAmount, err := convert.ToPositiveBaseUnits(input.Amount, token.Decimals)
	if err != nil {
		return nil, domainerrors.Validation("amount", "amount must be a positive decimal number")
	}

	priceAnchor, err := convert.ToPositiveBaseUnits(input.Price, 0)
	if err != nil {
		return nil, domainerrors.Validation("price", "price must be a positive whole naira amount")
	}

	// An empty rate is accepted (the contract stores any string), but a
	// non-empty one must be quotable.
	if input.RateText != "" {
		if _, err := convert.ParseRate(input.RateText); err != nil {
			return nil, domainerrors.Validation("rate", "unrecognized rate format")
		}
	}

	approved := false
	if !token.Native {
		approved, err = u.gate.EnsureApproved(ctx, token.Address, baseAmount)
		if err != nil {
			return nil, err
		}
	}

	txHash, err := u.market.CreateAd(ctx, &entities.ChainAdInput{
		TokenAddress:  token.Address,
		Symbol:        token.Symbol,
		BaseAmount:    baseAmount.String(),
		PriceAnchor:   priceAnchor.String(),
		PaymentMethod: input.PaymentMethod,
		RateText:      input.RateText,
		IsNative:      token.Native,
	})
	if err != nil {
		return nil, domainerrors.Transport(err)
	}

	entryID := u.journalSubmission(ctx, identity, entities.JournalKindAdCreation, token.Symbol, baseAmount.String(), txHash)

	outcome, err := u.market.WaitMined(ctx, txHash)
	if err != nil {
		return nil, domainerrors.Transport(err)
	}
	if !outcome.Succeeded {
		u.journalStatus(ctx, entryID, entities.JournalStatusFailed)
		return nil, domainerrors.TxReverted(txHash)
	}

	u.journalStatus(ctx, entryID, entities.JournalStatusConfirmed)
	if outcome.AdID.Valid {
		if err := u.journal.SetAdID(ctx, entryID, outcome.AdID.Int64); err != nil {
			logger.Warn(ctx, "failed to record ad id on journal entry", zap.Error(err))
		}
	}

	result := &entities.CreateAdResult{
		AdID:     outcome.AdID,
		TxHash:   txHash,
		Approved: approved,
	}
	result.MirrorWarning = u.mirrorCreation(ctx, identity, input, token, baseAmount.String(), txHash, outcome)

	return result, nil
}

// CancelAd cancels the caller's own ad. confirmed must be true: cancellation
// refunds the full escrowed amount and the UI is expected to have asked
// first. Partial fills never block cancellation locally; if the contract
// refuses, the revert comes back as CancelRejected.
func (u *AdLifecycleUsecase) CancelAd(ctx context.Context, identity entities.Identity, adID int64, confirmed bool) (*entities.CancelAdResult, error) {
	if !confirmed {
		return nil, domainerrors.Validation("confirm", "cancellation requires explicit confirmation")
	}
	if !identity.WalletConnected() {
		return nil, domainerrors.WalletNotConnected()
	}

	ads, err := u.market.GetAllAds(ctx)
	if err != nil {
		return nil, domainerrors.Transport(err)
	}

	var ad *entities.Ad
	for _, candidate := range ads {
		if candidate.ID == adID {
			ad = candidate
			break
		}
	}
	if ad == nil {
		return nil, domainerrors.NotFound(fmt.Sprintf("ad %d not found", adID))
	}
	if !ad.BelongsTo(identity.WalletAddress) {
		return nil, domainerrors.Forbidden("ad belongs to another vendor")
	}
	if !ad.IsActive {
		return nil, domainerrors.Conflict(fmt.Sprintf("ad %d is not active", adID))
	}

	txHash, err := u.market.CancelAd(ctx, adID)
	if err != nil {
		return nil, domainerrors.Transport(err)
	}

	entryID := u.journalSubmission(ctx, identity, entities.JournalKindAdCancellation, ad.CryptoToken, ad.TokenAmount, txHash)

	outcome, err := u.market.WaitMined(ctx, txHash)
	if err != nil {
		return nil, domainerrors.Transport(err)
	}
	if !outcome.Succeeded {
		u.journalStatus(ctx, entryID, entities.JournalStatusFailed)
		return nil, domainerrors.CancelRejected(fmt.Sprintf("cancellation of ad %d reverted on chain", adID))
	}

	u.journalStatus(ctx, entryID, entities.JournalStatusConfirmed)

	token := u.catalog.BySymbolOrDefault(ad.CryptoToken)
	refund := displayAmount(ad.TokenAmount, token.Decimals)

	result := &entities.CancelAdResult{
		AdID:         adID,
		TxHash:       txHash,
		RefundAmount: refund.String(),
	}

	if identity.Authenticated() {
		record := &entities.TransactionRecord{
			UserID:      identity.UserID,
			Type:        entities.TxTypeAdCancellation,
			Asset:       ad.CryptoToken,
			Amount:      refund.InexactFloat64(),
			Status:      "completed",
			TxHash:      txHash,
			Description: fmt.Sprintf("Ad with ID %d was cancelled", adID),
		}
		if err := u.mirror.AddTransaction(ctx, record); err != nil {
			logger.Warn(ctx, "mirror transaction write failed after confirmed cancellation", zap.Error(err), zap.Int64("ad_id", adID))
			result.MirrorWarning = "cancellation confirmed on chain but backend records were not updated"
		}
	}

	return result, nil
}

// AbandonWait marks a pending journal entry abandoned so a client can stop
// waiting on a confirmation without resubmitting. The underlying tx is
// unaffected; it may still mine.
func (u *AdLifecycleUsecase) AbandonWait(ctx context.Context, identity entities.Identity, txHash string) (*entities.JournalEntry, error) {
	entry, err := u.journal.GetByTxHash(ctx, txHash)
	if err != nil {
		return nil, domainerrors.NotFound("no journal entry for transaction " + txHash)
	}

	if !u.ownsEntry(identity, entry) {
		return nil, domainerrors.Forbidden("journal entry belongs to another user")
	}
	if entry.Status != entities.JournalStatusPending {
		return nil, domainerrors.Conflict("journal entry is not pending")
	}

	if err := u.journal.MarkAbandoned(ctx, []uuid.UUID{entry.ID}); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	entry.Status = entities.JournalStatusAbandoned
	return entry, nil
}

func (u *AdLifecycleUsecase) ownsEntry(identity entities.Identity, entry *entities.JournalEntry) bool {
	if identity.Authenticated() && entry.UserID == identity.UserID {
		return true
	}
	return identity.WalletConnected() && strings.EqualFold(entry.WalletAddress, identity.WalletAddress)
}

// displayAmount converts a base-unit amount string to display units. A
// malformed stored amount yields zero rather than an error; it only feeds
// presentation fields.
func displayAmount(baseAmount string, decimals int32) decimal.Decimal {
	base, ok := new(big.Int).SetString(baseAmount, 10)
	if !ok {
		return decimal.Zero
	}
	return convert.ToDisplayUnits(base, decimals)
}

// journalSubmission records a just-submitted tx as pending. Journal failures
// are logged, never propagated: the tx is already on the wire and the caller
// still needs its outcome.
func (u *AdLifecycleUsecase) journalSubmission(ctx context.Context, identity entities.Identity, kind entities.JournalKind, asset, baseAmount, txHash string) uuid.UUID {
	entry := &entities.JournalEntry{
		ID:            uuid.New(),
		UserID:        identity.UserID,
		WalletAddress: identity.WalletAddress,
		Kind:          kind,
		Asset:         asset,
		BaseAmount:    baseAmount,
		TxHash:        txHash,
		Status:        entities.JournalStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := u.journal.Create(ctx, entry); err != nil {
		logger.Warn(ctx, "failed to journal submitted transaction", zap.Error(err), zap.String("tx_hash", txHash))
	}
	return entry.ID
}

func (u *AdLifecycleUsecase) journalStatus(ctx context.Context, id uuid.UUID, status entities.JournalStatus) {
	if err := u.journal.UpdateStatus(ctx, id, status); err != nil {
		logger.Warn(ctx, "failed to update journal status", zap.Error(err), zap.String("status", string(status)))
	}
}

// mirrorCreation pushes the confirmed creation to the backend mirror.
// Returns a human-readable warning when records could not be written; the
// chain write is final regardless.
func (u *AdLifecycleUsecase) mirrorCreation(ctx context.Context, identity entities.Identity, input *entities.PostAdInput, token entities.Token, baseAmount, txHash string, outcome *entities.TxOutcome) string {
	if !identity.Authenticated() {
		return ""
	}

	display := displayAmount(baseAmount, token.Decimals)

	adRecord := &entities.AdRecord{
		UserID:          identity.UserID,
		AdsID:           outcome.AdID,
		Title:           fmt.Sprintf("Sell %s", token.Symbol),
		AssetType:       token.Symbol,
		PricePerUnit:    input.Price,
		AvailableAmount: display.InexactFloat64(),
		MinLimit:        input.MinLimit,
		MaxLimit:        input.MaxLimit,
		PaymentMethods:  paymentMethods(input.PaymentMethod),
		TxHash:          txHash,
	}

	txRecord := &entities.TransactionRecord{
		UserID:      identity.UserID,
		Type:        entities.TxTypeAdCreation,
		Asset:       token.Symbol,
		Amount:      display.InexactFloat64(),
		Status:      "completed",
		TxHash:      txHash,
		Description: fmt.Sprintf("Created ad selling %s %s", input.Amount, token.Symbol),
	}

	var warned bool
	if err := u.mirror.AddAd(ctx, adRecord); err != nil {
		logger.Warn(ctx, "mirror ad write failed after confirmed creation", zap.Error(err), zap.String("tx_hash", txHash))
		warned = true
	}
	if err := u.mirror.AddTransaction(ctx, txRecord); err != nil {
		logger.Warn(ctx, "mirror transaction write failed after confirmed creation", zap.Error(err), zap.String("tx_hash", txHash))
		warned = true
	}

	if warned {
		return "ad confirmed on chain but backend records were not fully updated"
	}
	return ""
}

func paymentMethods(method string) []string {
	if method == "" {
		return []string{}
	}
	return []string{method}
}
