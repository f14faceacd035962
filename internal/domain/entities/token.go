package entities

import "strings"

// Token describes a tradable asset: an ERC-20 contract or the native asset
// behind the zero-address sentinel.
type Token struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals int32  `json:"decimals"`
	Native   bool   `json:"native"`
}

// TokenCatalog is the set of assets ads may be placed for.
type TokenCatalog []Token

// BySymbol finds a token by its case-insensitive symbol.
func (c TokenCatalog) BySymbol(symbol string) (Token, bool) {
	for _, t := range c {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, true
		}
	}
	return Token{}, false
}

// BySymbolOrDefault returns the catalog entry for symbol, or an 18-decimal
// placeholder when the symbol is unknown. Chain reads can return ads for
// assets that were delisted from the catalog; display math still needs a
// precision.
func (c TokenCatalog) BySymbolOrDefault(symbol string) Token {
	if t, ok := c.BySymbol(symbol); ok {
		return t
	}
	return Token{Symbol: symbol, Decimals: 18}
}

// DefaultTokenCatalog is the Sepolia asset list the storefront ships with.
func DefaultTokenCatalog() TokenCatalog {
	return TokenCatalog{
		{Symbol: "ETH", Address: NativeTokenAddress, Decimals: 18, Native: true},
		{Symbol: "USDC", Address: "0x4dbcdf9b62e891a7cec5a2568c3f4faf9e8abe2b", Decimals: 6},
		{Symbol: "DAI", Address: "0xF14f9596430931E177469715c591513308244e8F", Decimals: 18},
		{Symbol: "WETH", Address: "0xdd13E55209Fd76AfE204dBda4007C227904f0a81", Decimals: 18},
	}
}
