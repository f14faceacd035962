package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var erc20ABI = mustParseABI(`[
	{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"spender","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"approve","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`)

// ERC20Client reads and writes ERC-20 token contracts with the service
// signer. It implements repositories.TokenGateway.
type ERC20Client struct {
	evm    *EVMClient
	signer *Signer
}

// NewERC20Client creates an ERC-20 client.
func NewERC20Client(evm *EVMClient, signer *Signer) *ERC20Client {
	return &ERC20Client{evm: evm, signer: signer}
}

// Allowance reads the current delegated spend limit from owner to spender.
// The value is stale the moment it is returned; callers re-read before any
// write that depends on it.
func (c *ERC20Client) Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error) {
	out, err := c.evm.CallUnpack(ctx, token, erc20ABI, "allowance",
		common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, fmt.Errorf("allowance: %w", err)
	}
	return out[0].(*big.Int), nil
}

// Approve submits an approval for the given amount and returns the
// transaction hash.
func (c *ERC20Client) Approve(ctx context.Context, token, spender string, amount *big.Int) (string, error) {
	auth, err := c.signer.TransactOpts(ctx, c.evm.ChainID(), nil)
	if err != nil {
		return "", err
	}
	return c.evm.Transact(ctx, auth, common.HexToAddress(token), erc20ABI, "approve",
		common.HexToAddress(spender), amount)
}

// Decimals reads the token's decimal precision.
func (c *ERC20Client) Decimals(ctx context.Context, token string) (int32, error) {
	out, err := c.evm.CallUnpack(ctx, token, erc20ABI, "decimals")
	if err != nil {
		return 0, fmt.Errorf("decimals: %w", err)
	}
	return int32(out[0].(uint8)), nil
}

// BalanceOf reads the token balance of an address.
func (c *ERC20Client) BalanceOf(ctx context.Context, token, account string) (*big.Int, error) {
	out, err := c.evm.CallUnpack(ctx, token, erc20ABI, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return nil, fmt.Errorf("balanceOf: %w", err)
	}
	return out[0].(*big.Int), nil
}
