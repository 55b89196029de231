package fixture

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is one line of the portfolio summary.
type Holding struct {
	CoinID   string // Empty for the cash line
	Symbol   string
	Quantity decimal.Decimal
}

// IsCash reports whether h is the cash line.
func (h Holding) IsCash() bool {
	return h.CoinID == ""
}

// Title is the header text of the holding, e.g. "0.5 BTC" or "Cash".
func (h Holding) Title() string {
	if h.IsCash() {
		return "Cash"
	}
	return fmt.Sprintf("%s %s", h.Quantity.String(), h.Symbol)
}

// Value prices the holding against p. Cash is valued at face.
func (h Holding) Value(p Prices) (decimal.Decimal, error) {
	if h.IsCash() {
		return h.Quantity, nil
	}
	q, err := p.Quote(h.CoinID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("value %s: %w", h.Title(), err)
	}
	return h.Quantity.Mul(q.USD), nil
}

// Portfolio is the ordered list of holdings shown on the dashboard.
type Portfolio []Holding

// DefaultPortfolio returns two coin holdings and the cash line.
func DefaultPortfolio() Portfolio {
	return Portfolio{
		{CoinID: "bitcoin", Symbol: "BTC", Quantity: decimal.RequireFromString("0.5")},
		{CoinID: "ethereum", Symbol: "ETH", Quantity: decimal.RequireFromString("2.3")},
		{Symbol: "USD", Quantity: decimal.NewFromInt(5250)},
	}
}

// Find returns the holding for a coin key or ticker, ignoring case. The
// cash line is found by its currency code.
func (pf Portfolio) Find(symbol string) (Holding, bool) {
	for _, h := range pf {
		if strings.EqualFold(h.CoinID, symbol) || strings.EqualFold(h.Symbol, symbol) {
			return h, true
		}
	}
	return Holding{}, false
}

// Total sums the value of every holding.
func (pf Portfolio) Total(p Prices) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, h := range pf {
		v, err := h.Value(p)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// HoldingView is a holding rendered for display.
type HoldingView struct {
	Title string // "0.5 BTC"
	Value string // "$21,625.00"
	Icon  string // CSS icon name
}

// Summary renders the portfolio into display rows and the total
// statistic in whole dollars ("$33,039").
func (pf Portfolio) Summary(p Prices) ([]HoldingView, string, error) {
	views := make([]HoldingView, 0, len(pf))
	for _, h := range pf {
		v, err := h.Value(p)
		if err != nil {
			return nil, "", err
		}
		icon := "dollar"
		if !h.IsCash() {
			icon = h.CoinID
		}
		views = append(views, HoldingView{Title: h.Title(), Value: FormatUSD(v, 2), Icon: icon})
	}
	total, err := pf.Total(p)
	if err != nil {
		return nil, "", err
	}
	return views, FormatUSD(total, 0), nil
}
