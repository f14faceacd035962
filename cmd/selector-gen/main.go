package main

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Prints the 4-byte selectors for the Swap24Market revert signatures so
// raw revert data from the RPC node can be matched by hand.
func main() {
	sigs := []string{
		"AdNotFound()",
		"AdNotActive()",
		"NotAdVendor()",
		"ZeroAmount()",
		"ZeroPrice()",
		"InsufficientAllowance()",
		"TransferFailed()",
		"Panic(uint256)",
		"Error(string)",
	}

	for _, sig := range sigs {
		hash := crypto.Keccak256([]byte(sig))
		selector := hex.EncodeToString(hash[:4])
		fmt.Printf("%s: 0x%s\n", sig, selector)
	}
}
