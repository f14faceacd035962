package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"swap24.backend/internal/domain/entities"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/domain/repositories"
	"swap24.backend/pkg/convert"
)

// Ad listing data sources
const (
	AdSourceChain  = "chain"
	AdSourceMirror = "mirror"
)

// ListAdsFilter narrows a market listing.
type ListAdsFilter struct {
	Asset      string
	ActiveOnly bool
}

// AdQueryUsecase serves the read side of the marketplace: listings, the
// caller's own ads, and buy quotes. Every listing is a fresh read; ads are
// mutated by other vendors' txs at any time and a stale cache would quote
// against dead ads.
type AdQueryUsecase struct {
	market repositories.MarketGateway
	mirror repositories.MirrorClient
	source string
}

// NewAdQueryUsecase creates a new ad query usecase
func NewAdQueryUsecase(market repositories.MarketGateway, mirror repositories.MirrorClient, source string) *AdQueryUsecase {
	return &AdQueryUsecase{
		market: market,
		mirror: mirror,
		source: source,
	}
}

// ListAll returns the current market listing from the configured source.
func (u *AdQueryUsecase) ListAll(ctx context.Context, filter ListAdsFilter) ([]*entities.Ad, error) {
	ads, err := u.fetchAds(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entities.Ad, 0, len(ads))
	for _, ad := range ads {
		if filter.ActiveOnly && !ad.IsActive {
			continue
		}
		if filter.Asset != "" && !strings.EqualFold(ad.CryptoToken, filter.Asset) {
			continue
		}
		filtered = append(filtered, ad)
	}
	return filtered, nil
}

// ListMine returns the vendor's own ads, active ones first.
func (u *AdQueryUsecase) ListMine(ctx context.Context, vendor string) ([]*entities.Ad, error) {
	if vendor == "" {
		return nil, domainerrors.WalletNotConnected()
	}

	ads, err := u.fetchAds(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]*entities.Ad, 0)
	for _, ad := range ads {
		if ad.BelongsTo(vendor) {
			mine = append(mine, ad)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].IsActive && !mine[j].IsActive
	})
	return mine, nil
}

// ComputeBuyQuote converts a requested token amount into fiat against an
// ad's advertised rate. The quote is advisory; nothing is reserved.
func (u *AdQueryUsecase) ComputeBuyQuote(ctx context.Context, adID int64, requestedAmount string) (*entities.BuyQuote, error) {
	amount, err := decimal.NewFromString(requestedAmount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.Validation("amount", "amount must be a positive decimal number")
	}

	ads, err := u.fetchAds(ctx)
	if err != nil {
		return nil, err
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
	if !ad.IsActive {
		return nil, domainerrors.Conflict(fmt.Sprintf("ad %d is no longer active", adID))
	}

	nairaPerToken, err := u.nairaPerToken(ad)
	if err != nil {
		return nil, err
	}

	fiat := amount.Mul(nairaPerToken)

	quote := &entities.BuyQuote{
		AdID:          ad.ID,
		TokenAmount:   amount.String(),
		FiatAmount:    fiat.String(),
		NairaPerToken: nairaPerToken.String(),
		WithinLimits:  true,
	}

	if ad.Limit != "" {
		limits, err := convert.ParseLimitRange(ad.Limit)
		if err == nil {
			// An unparsable limit string degrades to no limits; a parsed one
			// is enforced.
			quote.MinLimit = limits.Min.String()
			quote.MaxLimit = limits.Max.String()
			if fiat.LessThan(limits.Min) || fiat.GreaterThan(limits.Max) {
				return nil, domainerrors.OutOfLimitRange(fmt.Sprintf(
					"order value %s NGN is outside the %s - %s NGN limit", fiat.String(), limits.Min.String(), limits.Max.String()))
			}
		}
	}

	return quote, nil
}

// nairaPerToken resolves an ad's conversion rate: the advertised rate string
// first, the mirror's pricePerUnit as fallback when the string never parses.
func (u *AdQueryUsecase) nairaPerToken(ad *entities.Ad) (decimal.Decimal, error) {
	if ad.Rate != "" {
		if rate, err := convert.ParseRate(ad.Rate); err == nil {
			return rate.NairaPerToken, nil
		}
	}

	if ad.PricePerUnit != "" {
		if price, err := decimal.NewFromString(strings.ReplaceAll(ad.PricePerUnit, ",", "")); err == nil && price.IsPositive() {
			return price, nil
		}
	}

	return decimal.Zero, domainerrors.RateUnavailable(fmt.Sprintf("ad %d has no usable conversion rate", ad.ID))
}

func (u *AdQueryUsecase) fetchAds(ctx context.Context) ([]*entities.Ad, error) {
	if u.source == AdSourceMirror {
		ads, err := u.mirror.ListAds(ctx)
		if err != nil {
			return nil, domainerrors.Transport(err)
		}
		return ads, nil
	}

	ads, err := u.market.GetAllAds(ctx)
	if err != nil {
		return nil, domainerrors.Transport(err)
	}
	return ads, nil
}
