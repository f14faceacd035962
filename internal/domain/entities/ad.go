package entities

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

// NativeTokenAddress is the zero-address sentinel the marketplace contract
// uses for the chain's native asset.
const NativeTokenAddress = "0x0000000000000000000000000000000000000000"

// Ad is a vendor's standing offer on the marketplace contract. TokenAmount
// and PriceInNaira are base-10 strings of the on-chain uint256 values;
// TokenAmount is denominated in the token's smallest unit.
type Ad struct {
	ID            int64  `json:"id"`
	Vendor        string `json:"vendor"`
	TokenAddress  string `json:"tokenAddress"`
	CryptoToken   string `json:"cryptoToken"`
	TokenAmount   string `json:"tokenAmount"`
	PriceInNaira  string `json:"priceInNaira"`
	PaymentMethod string `json:"paymentMethod"`
	Rate          string `json:"rate"`
	IsActive      bool   `json:"isActive"`
	IsETH         bool   `json:"isEth"`

	// Mirror-only seller metadata; empty when the ad was read from chain.
	PricePerUnit string `json:"pricePerUnit,omitempty"`
	Limit        string `json:"limit,omitempty"`
	SellerName   string `json:"sellerName,omitempty"`
}

// IsNativeToken reports whether the ad trades the native asset.
func (a *Ad) IsNativeToken() bool {
	return strings.EqualFold(a.TokenAddress, NativeTokenAddress)
}

// BelongsTo compares the vendor address case-insensitively; chain reads and
// wallet sessions disagree on hex casing.
func (a *Ad) BelongsTo(vendor string) bool {
	return vendor != "" && strings.EqualFold(a.Vendor, vendor)
}

// PostAdInput is the "post ad" request as it arrives from the UI: decimal
// amounts as typed, rate and limits as free text.
type PostAdInput struct {
	TokenSymbol   string `json:"token" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Price         string `json:"price" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	RateText      string `json:"rate"`
	MinLimit      string `json:"minLimit"`
	MaxLimit      string `json:"maxLimit"`
}

// CreateAdResult reports a confirmed ad creation. AdID is null when the
// creation event could not be decoded from the receipt; the on-chain write
// is final either way. MirrorWarning is set when the backend mirror write
// failed after the confirmed chain write.
type CreateAdResult struct {
	AdID          null.Int64 `json:"adId"`
	TxHash        string     `json:"txHash"`
	Approved      bool       `json:"approvalSubmitted"`
	MirrorWarning string     `json:"mirrorWarning,omitempty"`
}

// CancelAdResult reports a confirmed cancellation. RefundAmount is the
// display-unit token amount released back to the vendor.
type CancelAdResult struct {
	AdID          int64  `json:"adId"`
	TxHash        string `json:"txHash"`
	RefundAmount  string `json:"refundAmount"`
	MirrorWarning string `json:"mirrorWarning,omitempty"`
}

// BuyQuote is the fiat conversion for a requested token amount against an
// ad's rate.
type BuyQuote struct {
	AdID          int64  `json:"adId"`
	TokenAmount   string `json:"tokenAmount"`
	FiatAmount    string `json:"fiatAmount"`
	NairaPerToken string `json:"nairaPerToken"`
	WithinLimits  bool   `json:"withinLimits"`
	MinLimit      string `json:"minLimit,omitempty"`
	MaxLimit      string `json:"maxLimit,omitempty"`
}

// ChainAdInput is the argument tuple of the contract's createAd call, fully
// converted: BaseAmount and PriceAnchor are base-10 uint256 strings.
type ChainAdInput struct {
	TokenAddress  string
	Symbol        string
	BaseAmount    string
	PriceAnchor   string
	PaymentMethod string
	RateText      string
	IsNative      bool
}

// TxOutcome is a mined receipt reduced to what the lifecycle needs. AdID is
// valid only when an AdCreated event was decoded from the receipt logs.
type TxOutcome struct {
	TxHash      string
	Succeeded   bool
	BlockNumber uint64
	AdID        null.Int64
}
