package convert

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid decimal amount")
	ErrUnparsableRate  = errors.New("unparsable rate text")
	ErrUnparsableLimit = errors.New("unparsable limit text")
)

// Rate is a canonical fiat-per-token exchange rate derived from a free-text
// rate sentence. A Rate is only ever returned alongside a nil error; callers
// never see a zero rate as a valid value.
type Rate struct {
	NairaPerToken decimal.Decimal
}

// LimitRange is a parsed order-limit window.
type LimitRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// The two sentence forms the backend and contract emit:
//
//	"1 NGN = 0.00031 of BTC"  (fiat to token, invert)
//	"1 BTC = 45000000 NGN"    (token to fiat, use directly)
var (
	fiatToTokenPattern = regexp.MustCompile(`(?i)1\s*NGN\s*=\s*([\d.]+)\s*(?:of)?\s*\w+`)
	tokenToFiatPattern = regexp.MustCompile(`(?i)1\s*\w+\s*=\s*([\d.]+)\s*NGN`)
	limitRangePattern  = regexp.MustCompile(`([\d.]+)\s*-\s*([\d.]+)`)
	thousandsSeparator = strings.NewReplacer(",", "")
)

// ParseRate recognizes the two rate sentence forms and returns the naira
// price of one token. Text matching neither form fails with
// ErrUnparsableRate.
func ParseRate(text string) (Rate, error) {
	if m := fiatToTokenPattern.FindStringSubmatch(text); m != nil {
		tokenPerNaira, err := decimal.NewFromString(m[1])
		if err == nil && tokenPerNaira.IsPositive() {
			return Rate{NairaPerToken: decimal.NewFromInt(1).Div(tokenPerNaira)}, nil
		}
	}

	if m := tokenToFiatPattern.FindStringSubmatch(text); m != nil {
		nairaPerToken, err := decimal.NewFromString(m[1])
		if err == nil && nairaPerToken.IsPositive() {
			return Rate{NairaPerToken: nairaPerToken}, nil
		}
	}

	return Rate{}, ErrUnparsableRate
}

// ParseLimitRange extracts the two numbers of an order-limit sentence such
// as "order limit 15,947 - 41,854 NGN". Thousands separators are stripped
// before matching, so the example yields (15947, 41854).
func ParseLimitRange(text string) (LimitRange, error) {
	m := limitRangePattern.FindStringSubmatch(thousandsSeparator.Replace(text))
	if m == nil {
		return LimitRange{}, ErrUnparsableLimit
	}

	min, errMin := decimal.NewFromString(m[1])
	max, errMax := decimal.NewFromString(m[2])
	if errMin != nil || errMax != nil {
		return LimitRange{}, ErrUnparsableLimit
	}

	return LimitRange{Min: min, Max: max}, nil
}
