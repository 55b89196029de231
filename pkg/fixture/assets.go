package fixture

import (
	"fmt"
	"strings"
)

// Asset identifies one tradable coin on the dashboard.
type Asset struct {
	Name   string // Display name, e.g. "Bitcoin"
	Symbol string // Ticker, e.g. "BTC"
	CoinID string // Price API key, e.g. "bitcoin"
	Value  string // Dropdown data-value token, e.g. "btc"
}

// Label is the human-readable form shown on cards and dropdown items.
func (a Asset) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Symbol)
}

// Assets returns the four dashboard assets in card order.
func Assets() []Asset {
	return []Asset{
		{Name: "Bitcoin", Symbol: "BTC", CoinID: "bitcoin", Value: "btc"},
		{Name: "Ethereum", Symbol: "ETH", CoinID: "ethereum", Value: "eth"},
		{Name: "Cardano", Symbol: "ADA", CoinID: "cardano", Value: "ada"},
		{Name: "Solana", Symbol: "SOL", CoinID: "solana", Value: "sol"},
	}
}

// AssetByValue finds an asset by its dropdown token.
func AssetByValue(value string) (Asset, bool) {
	for _, a := range Assets() {
		if a.Value == value {
			return a, true
		}
	}
	return Asset{}, false
}

// AssetBySymbol finds an asset by coin key, ticker or dropdown token,
// ignoring case: "bitcoin", "BTC" and "btc" all find Bitcoin.
func AssetBySymbol(symbol string) (Asset, bool) {
	for _, a := range Assets() {
		if strings.EqualFold(a.CoinID, symbol) || strings.EqualFold(a.Symbol, symbol) {
			return a, true
		}
	}
	return Asset{}, false
}

// CoinIDs returns the price API keys in card order.
func CoinIDs() []string {
	assets := Assets()
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.CoinID
	}
	return ids
}
