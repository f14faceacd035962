package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/volatiletech/null/v8"
	"swap24.backend/internal/domain/entities"
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// MarketABI covers the slice of the Swap24Market contract this service
// consumes: the full-table read, the two vendor writes, and the creation
// event.
var MarketABI = mustParseABI(`[
	{"inputs":[],"name":"getAllAds","outputs":[{"components":[{"internalType":"uint256","name":"id","type":"uint256"},{"internalType":"address","name":"vendor","type":"address"},{"internalType":"address","name":"tokenAddress","type":"address"},{"internalType":"string","name":"cryptoToken","type":"string"},{"internalType":"uint256","name":"tokenAmount","type":"uint256"},{"internalType":"uint256","name":"priceInNaira","type":"uint256"},{"internalType":"string","name":"paymentMethod","type":"string"},{"internalType":"string","name":"rate","type":"string"},{"internalType":"bool","name":"isActive","type":"bool"},{"internalType":"bool","name":"isETH","type":"bool"}],"internalType":"struct Swap24Market.Ad[]","name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"tokenAddress","type":"address"},{"internalType":"string","name":"cryptoToken","type":"string"},{"internalType":"uint256","name":"tokenAmount","type":"uint256"},{"internalType":"uint256","name":"priceInNaira","type":"uint256"},{"internalType":"string","name":"paymentMethod","type":"string"},{"internalType":"string","name":"rate","type":"string"}],"name":"createAd","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"adId","type":"uint256"}],"name":"cancelAd","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"adId","type":"uint256"},{"indexed":true,"internalType":"address","name":"vendor","type":"address"}],"name":"AdCreated","type":"event"}
]`)

// marketAd mirrors the contract's Ad tuple for ABI decoding.
type marketAd struct {
	Id            *big.Int
	Vendor        common.Address
	TokenAddress  common.Address
	CryptoToken   string
	TokenAmount   *big.Int
	PriceInNaira  *big.Int
	PaymentMethod string
	Rate          string
	IsActive      bool
	IsETH         bool
}

// MarketClient talks to the Swap24Market contract with the service signer.
// It implements repositories.MarketGateway.
type MarketClient struct {
	evm     *EVMClient
	signer  *Signer
	address common.Address

	// waitTimeout bounds WaitMined when the caller's context carries no
	// deadline of its own. Zero means wait until the context is done.
	waitTimeout time.Duration
}

// NewMarketClient creates a market client for the contract at addressHex.
func NewMarketClient(evm *EVMClient, signer *Signer, addressHex string) *MarketClient {
	return &MarketClient{
		evm:     evm,
		signer:  signer,
		address: common.HexToAddress(addressHex),
	}
}

// SetWaitTimeout caps how long WaitMined polls for a receipt.
func (c *MarketClient) SetWaitTimeout(d time.Duration) {
	c.waitTimeout = d
}

// MarketAddress returns the marketplace contract address.
func (c *MarketClient) MarketAddress() string {
	return c.address.Hex()
}

// SignerAddress returns the service wallet address used for writes.
func (c *MarketClient) SignerAddress() string {
	return c.signer.Address().Hex()
}

// GetAllAds reads the full ad table. Every call is a fresh snapshot; the
// result is never cached here.
func (c *MarketClient) GetAllAds(ctx context.Context) ([]*entities.Ad, error) {
	out, err := c.evm.CallUnpack(ctx, c.address.Hex(), MarketABI, "getAllAds")
	if err != nil {
		return nil, fmt.Errorf("getAllAds: %w", err)
	}
	raw := *abi.ConvertType(out[0], new([]marketAd)).(*[]marketAd)

	ads := make([]*entities.Ad, 0, len(raw))
	for _, r := range raw {
		ads = append(ads, &entities.Ad{
			ID:            r.Id.Int64(),
			Vendor:        r.Vendor.Hex(),
			TokenAddress:  r.TokenAddress.Hex(),
			CryptoToken:   r.CryptoToken,
			TokenAmount:   r.TokenAmount.String(),
			PriceInNaira:  r.PriceInNaira.String(),
			PaymentMethod: r.PaymentMethod,
			Rate:          r.Rate,
			IsActive:      r.IsActive,
			IsETH:         r.IsETH,
		})
	}
	return ads, nil
}

// CreateAd submits the createAd transaction, attaching the native value
// when the ad trades ETH, and returns the transaction hash.
func (c *MarketClient) CreateAd(ctx context.Context, input *entities.ChainAdInput) (string, error) {
	baseAmount, ok := new(big.Int).SetString(input.BaseAmount, 10)
	if !ok {
		return "", fmt.Errorf("invalid base amount %q", input.BaseAmount)
	}
	priceAnchor, ok := new(big.Int).SetString(input.PriceAnchor, 10)
	if !ok {
		return "", fmt.Errorf("invalid price anchor %q", input.PriceAnchor)
	}

	var value *big.Int
	if input.IsNative {
		value = baseAmount
	}

	auth, err := c.signer.TransactOpts(ctx, c.evm.ChainID(), value)
	if err != nil {
		return "", err
	}

	return c.evm.Transact(ctx, auth, c.address, MarketABI, "createAd",
		common.HexToAddress(input.TokenAddress),
		input.Symbol,
		baseAmount,
		priceAnchor,
		input.PaymentMethod,
		input.RateText,
	)
}

// CancelAd submits the cancelAd transaction for the given chain id.
func (c *MarketClient) CancelAd(ctx context.Context, adID int64) (string, error) {
	auth, err := c.signer.TransactOpts(ctx, c.evm.ChainID(), nil)
	if err != nil {
		return "", err
	}
	return c.evm.Transact(ctx, auth, c.address, MarketABI, "cancelAd", big.NewInt(adID))
}

// WaitMined blocks until the transaction is mined (or ctx is done) and
// reduces the receipt to an outcome, decoding the AdCreated event when the
// logs carry one from the marketplace address.
func (c *MarketClient) WaitMined(ctx context.Context, txHash string) (*entities.TxOutcome, error) {
	if c.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.waitTimeout)
		defer cancel()
	}
	receipt, err := c.evm.WaitForReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	return &entities.TxOutcome{
		TxHash:      txHash,
		Succeeded:   receipt.Status == types.ReceiptStatusSuccessful,
		BlockNumber: receipt.BlockNumber.Uint64(),
		AdID:        c.parseAdCreated(receipt),
	}, nil
}

// parseAdCreated extracts the chain-assigned ad id from the receipt logs.
// A receipt without a decodable event yields a null id; the ad still
// exists on-chain and the caller must not treat this as a failure.
func (c *MarketClient) parseAdCreated(receipt *types.Receipt) null.Int64 {
	eventID := MarketABI.Events["AdCreated"].ID
	for _, l := range receipt.Logs {
		if l == nil || l.Address != c.address {
			continue
		}
		if len(l.Topics) < 2 || l.Topics[0] != eventID {
			continue
		}
		return null.Int64From(new(big.Int).SetBytes(l.Topics[1].Bytes()).Int64())
	}
	return null.Int64{}
}
