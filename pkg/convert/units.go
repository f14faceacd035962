package convert

import (
	"math/big"
	"regexp"

	"github.com/shopspring/decimal"
)

// decimalAmountPattern accepts non-negative decimal input the way the ad
// forms do: digits, optionally one dot. Empty strings pass the pattern and
// are rejected separately.
var decimalAmountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// ToBaseUnits parses a non-negative decimal string and scales it to an
// integer amount in the token's smallest unit (10^decimals). Anything below
// one base unit is truncated.
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	if amount == "" || amount == "." || !decimalAmountPattern.MatchString(amount) {
		return nil, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if d.IsNegative() {
		return nil, ErrInvalidAmount
	}

	return d.Shift(decimals).Truncate(0).BigInt(), nil
}

// ToPositiveBaseUnits is ToBaseUnits with a zero amount rejected. Write
// paths use it: an ad for zero tokens is never valid.
func ToPositiveBaseUnits(amount string, decimals int32) (*big.Int, error) {
	base, err := ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	if base.Sign() == 0 {
		return nil, ErrInvalidAmount
	}
	return base, nil
}

// ToDisplayUnits is the inverse of ToBaseUnits. It always succeeds for a
// non-negative base amount.
func ToDisplayUnits(base *big.Int, decimals int32) decimal.Decimal {
	if base == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(base, 0).Shift(-decimals)
}
