package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds the service wallet key used for all marketplace writes.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex-encoded private key, with or without 0x prefix.
func NewSigner(privateKeyHex string) (*Signer, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if trimmed == "" {
		return nil, errors.New("signer private key is not configured")
	}
	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, errors.New("invalid signer private key")
	}
	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the signer's wallet address.
func (s *Signer) Address() common.Address {
	return s.address
}

// TransactOpts builds keyed transact options for the given chain, carrying
// the native value to attach (nil for none).
func (s *Signer) TransactOpts(ctx context.Context, chainID, value *big.Int) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, err
	}
	auth.Context = ctx
	auth.Value = value
	return auth, nil
}
