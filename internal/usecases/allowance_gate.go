package usecases

import (
	"context"
	"math/big"

	"swap24.backend/internal/domain/entities"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/domain/repositories"
)

// AllowanceGate decides whether an ERC-20 ad creation may proceed and, when
// it may not, submits the missing approval. The gate never guesses: a failed
// allowance read blocks the write path instead of defaulting to sufficient.
type AllowanceGate struct {
	tokens repositories.TokenGateway
	market repositories.MarketGateway
}

// NewAllowanceGate creates a new allowance gate
func NewAllowanceGate(tokens repositories.TokenGateway, market repositories.MarketGateway) *AllowanceGate {
	return &AllowanceGate{
		tokens: tokens,
		market: market,
	}
}

// IsSufficient reports whether the market contract may already pull the
// required amount from the signer. The native asset needs no allowance and
// short-circuits without a chain read.
func (g *AllowanceGate) IsSufficient(ctx context.Context, tokenAddress string, required *big.Int) (bool, error) {
	if tokenAddress == "" || tokenAddress == entities.NativeTokenAddress {
		return true, nil
	}

	allowance, err := g.tokens.Allowance(ctx, tokenAddress, g.market.SignerAddress(), g.market.MarketAddress())
	if err != nil {
		return false, domainerrors.AllowanceCheckFailed(err)
	}

	return allowance.Cmp(required) >= 0, nil
}

// EnsureApproved makes sure the market contract holds a sufficient allowance
// before an ERC-20 createAd, submitting and confirming an approve when it
// does not. Returns true when an approval tx was actually sent.
func (g *AllowanceGate) EnsureApproved(ctx context.Context, tokenAddress string, required *big.Int) (bool, error) {
	sufficient, err := g.IsSufficient(ctx, tokenAddress, required)
	if err != nil {
		return false, err
	}
	if sufficient {
		return false, nil
	}

	txHash, err := g.tokens.Approve(ctx, tokenAddress, g.market.MarketAddress(), required)
	if err != nil {
		return false, domainerrors.ApprovalRejected(err)
	}

	outcome, err := g.market.WaitMined(ctx, txHash)
	if err != nil {
		return true, domainerrors.ApprovalFailed(err)
	}
	if !outcome.Succeeded {
		return true, domainerrors.ApprovalFailed(domainerrors.ErrTxReverted)
	}

	return true, nil
}
