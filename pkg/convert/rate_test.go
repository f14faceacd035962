package convert

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate_FiatToToken(t *testing.T) {
	rate, err := ParseRate("1 NGN = 0.00031 of BTC")
	require.NoError(t, err)
	// 1 / 0.00031
	assert.True(t, rate.NairaPerToken.Round(3).Equal(decimal.RequireFromString("3225.806")),
		"got %s", rate.NairaPerToken)
}

func TestParseRate_TokenToFiat(t *testing.T) {
	rate, err := ParseRate("1 BTC = 45000000 NGN")
	require.NoError(t, err)
	assert.True(t, rate.NairaPerToken.Equal(decimal.NewFromInt(45000000)))
}

func TestParseRate_CaseAndSpacing(t *testing.T) {
	rate, err := ParseRate("1 ngn=0.5 USDT")
	require.NoError(t, err)
	assert.True(t, rate.NairaPerToken.Equal(decimal.NewFromInt(2)))
}

func TestParseRate_Unparsable(t *testing.T) {
	for _, text := range []string{"", "garbage", "1 NGN = 0 of BTC", "BTC for NGN"} {
		_, err := ParseRate(text)
		assert.ErrorIs(t, err, ErrUnparsableRate, "text %q", text)
	}
}

func TestParseLimitRange(t *testing.T) {
	limits, err := ParseLimitRange("order limit 15,947 - 41,854 NGN")
	require.NoError(t, err)
	assert.True(t, limits.Min.Equal(decimal.NewFromInt(15947)))
	assert.True(t, limits.Max.Equal(decimal.NewFromInt(41854)))
}

func TestParseLimitRange_PlainNumbers(t *testing.T) {
	limits, err := ParseLimitRange("500 - 10000")
	require.NoError(t, err)
	assert.True(t, limits.Min.Equal(decimal.NewFromInt(500)))
	assert.True(t, limits.Max.Equal(decimal.NewFromInt(10000)))
}

func TestParseLimitRange_Unparsable(t *testing.T) {
	for _, text := range []string{"", "no limits here", "100"} {
		_, err := ParseLimitRange(text)
		assert.ErrorIs(t, err, ErrUnparsableLimit, "text %q", text)
	}
}
