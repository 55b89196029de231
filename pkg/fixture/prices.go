package fixture

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Quote is the price record for one coin.
type Quote struct {
	USD       decimal.Decimal
	Change24h decimal.Decimal // Percent, e.g. 2.5 for +2.5%
}

// Rising reports whether the change indicator renders as an increase.
// A flat change counts as rising.
func (q Quote) Rising() bool {
	return !q.Change24h.IsNegative()
}

// Prices maps a coin key ("bitcoin") to its quote.
type Prices map[string]Quote

// DefaultPrices returns the canonical price fixture.
func DefaultPrices() Prices {
	return Prices{
		"bitcoin":  {USD: decimal.NewFromInt(43250), Change24h: decimal.RequireFromString("2.5")},
		"ethereum": {USD: decimal.NewFromInt(2680), Change24h: decimal.RequireFromString("1.8")},
		"cardano":  {USD: decimal.RequireFromString("0.52"), Change24h: decimal.RequireFromString("-0.8")},
		"solana":   {USD: decimal.RequireFromString("98.50"), Change24h: decimal.RequireFromString("4.2")},
	}
}

// Quote returns the quote for a coin, or an error if the fixture lacks it.
func (p Prices) Quote(coinID string) (Quote, error) {
	q, ok := p[coinID]
	if !ok {
		return Quote{}, fmt.Errorf("no price for %q", coinID)
	}
	return q, nil
}

// With returns a copy of p with coinID set to q.
func (p Prices) With(coinID string, q Quote) Prices {
	out := make(Prices, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[coinID] = q
	return out
}

// Only returns the quotes for the listed coin keys. Unknown keys are
// skipped.
func (p Prices) Only(ids ...string) Prices {
	out := make(Prices, len(ids))
	for _, id := range ids {
		if q, ok := p[id]; ok {
			out[id] = q
		}
	}
	return out
}

type simplePrice struct {
	USD       json.Number `json:"usd"`
	Change24h json.Number `json:"usd_24h_change"`
}

// MarshalJSON encodes the simple-price payload:
//
//	{"bitcoin": {"usd": 43250, "usd_24h_change": 2.5}, ...}
//
// Numbers are emitted as JSON numbers, not strings.
func (p Prices) MarshalJSON() ([]byte, error) {
	out := make(map[string]simplePrice, len(p))
	for id, q := range p {
		out[id] = simplePrice{
			USD:       json.Number(q.USD.String()),
			Change24h: json.Number(q.Change24h.String()),
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a simple-price payload.
func (p *Prices) UnmarshalJSON(data []byte) error {
	var raw map[string]struct {
		USD       decimal.Decimal `json:"usd"`
		Change24h decimal.Decimal `json:"usd_24h_change"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode price payload: %w", err)
	}
	out := make(Prices, len(raw))
	for id, r := range raw {
		out[id] = Quote{USD: r.USD, Change24h: r.Change24h}
	}
	*p = out
	return nil
}

// Keys returns the coin keys in sorted order.
func (p Prices) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
