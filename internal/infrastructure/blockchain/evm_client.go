package blockchain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	dialEVMClient    = ethclient.Dial
	getClientChainID = func(client *ethclient.Client, ctx context.Context) (*big.Int, error) {
		return client.ChainID(ctx)
	}
)

// EVMClient provides EVM blockchain interaction
type EVMClient struct {
	client          *ethclient.Client
	chainID         *big.Int
	rpcURL          string
	receiptInterval time.Duration
	// testCallView and testTransact allow deterministic unit tests without
	// network sockets.
	testCallView func(ctx context.Context, to string, data []byte) ([]byte, error)
	testTransact func(ctx context.Context, auth *bind.TransactOpts, to common.Address, parsed abi.ABI, method string, args ...interface{}) (string, error)
	testReceipt  func(ctx context.Context, txHash string) (*types.Receipt, error)
}

// NewEVMClient creates a new EVM client
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := getClientChainID(client, context.Background())
	if err != nil {
		return nil, err
	}

	return &EVMClient{
		client:          client,
		chainID:         chainID,
		rpcURL:          rpcURL,
		receiptInterval: 2 * time.Second,
	}, nil
}

// NewEVMClientWithHooks creates an EVM client that uses injected call,
// transact and receipt implementations. This is intended for unit tests
// where RPC sockets are unavailable.
func NewEVMClientWithHooks(
	chainID *big.Int,
	callView func(ctx context.Context, to string, data []byte) ([]byte, error),
	transact func(ctx context.Context, auth *bind.TransactOpts, to common.Address, parsed abi.ABI, method string, args ...interface{}) (string, error),
	receipt func(ctx context.Context, txHash string) (*types.Receipt, error),
) *EVMClient {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &EVMClient{
		chainID:         chainID,
		receiptInterval: time.Millisecond,
		testCallView:    callView,
		testTransact:    transact,
		testReceipt:     receipt,
	}
}

// ChainID returns the chain ID
func (c *EVMClient) ChainID() *big.Int {
	return c.chainID
}

// GetBalance gets the native token balance of an address
func (c *EVMClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	addr := common.HexToAddress(address)
	return c.client.BalanceAt(ctx, addr, nil)
}

// CallView executes a read-only contract call
func (c *EVMClient) CallView(ctx context.Context, to string, data []byte) ([]byte, error) {
	if c.testCallView != nil {
		return c.testCallView(ctx, to, data)
	}
	addr := common.HexToAddress(to)
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	return c.client.CallContract(ctx, msg, nil)
}

// CallUnpack packs a view call through the given ABI, executes it, and
// unpacks the return values.
func (c *EVMClient) CallUnpack(ctx context.Context, to string, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	res, err := c.CallView(ctx, to, data)
	if err != nil {
		return nil, err
	}
	return parsed.Unpack(method, res)
}

// Transact submits a state-changing call through a bound contract and
// returns the transaction hash.
func (c *EVMClient) Transact(ctx context.Context, auth *bind.TransactOpts, to common.Address, parsed abi.ABI, method string, args ...interface{}) (string, error) {
	if c.testTransact != nil {
		return c.testTransact(ctx, auth, to, parsed, method, args...)
	}
	contract := bind.NewBoundContract(to, parsed, c.client, c.client, c.client)
	tx, err := contract.Transact(auth, method, args...)
	if err != nil {
		return "", err
	}
	return tx.Hash().Hex(), nil
}

// TransactionReceipt gets a transaction receipt, or ethereum.NotFound while
// the transaction is unmined.
func (c *EVMClient) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	if c.testReceipt != nil {
		return c.testReceipt(ctx, txHash)
	}
	return c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
}

// WaitForReceipt polls until the transaction is mined or the context is
// done. The caller owns the deadline: a wait abandoned through ctx leaves
// the transaction in flight, it cannot be recalled.
func (c *EVMClient) WaitForReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	ticker := time.NewTicker(c.receiptInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
