package server

import (
	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
)

type cardView struct {
	CoinID string
	Label  string
}

type transactionView struct {
	Date   string
	Side   fixture.Side
	Color  string
	Symbol string
	Amount string
	Price  string
	Status string
}

type pageData struct {
	Title        string
	Cards        []cardView
	Assets       []fixture.Asset
	Columns      []string
	Transactions []transactionView
	Holdings     []fixture.HoldingView
	Total        string
	PriceURL     string
	TransitionMS int64
	ChartSeries  []float64
}

func newPageData(cfg Config) (pageData, error) {
	holdings, total, err := cfg.Portfolio.Summary(cfg.Prices)
	if err != nil {
		return pageData{}, err
	}

	assets := fixture.Assets()
	cards := make([]cardView, len(assets))
	for i, a := range assets {
		cards[i] = cardView{CoinID: a.CoinID, Label: a.Label()}
	}

	txs := make([]transactionView, len(cfg.Transactions))
	for i, t := range cfg.Transactions {
		txs[i] = transactionView{
			Date:   t.Date(),
			Side:   t.Side,
			Color:  t.Side.Color(),
			Symbol: t.Symbol,
			Amount: t.Amount.String(),
			Price:  fixture.FormatUSD(t.Price, 2),
			Status: t.Status,
		}
	}

	return pageData{
		Title:        Title,
		Cards:        cards,
		Assets:       assets,
		Columns:      fixture.TransactionColumns,
		Transactions: txs,
		Holdings:     holdings,
		Total:        total,
		PriceURL:     cfg.PriceURL,
		TransitionMS: cfg.TradeTransition.Milliseconds(),
		ChartSeries:  chartSeries(cfg.Prices),
	}, nil
}

// chartSeries derives a deterministic Bitcoin line around the fixture
// price, so the canvas always has something to draw.
func chartSeries(p fixture.Prices) []float64 {
	base := 43250.0
	if q, err := p.Quote("bitcoin"); err == nil {
		base = q.USD.InexactFloat64()
	}
	offsets := []float64{-0.031, -0.018, -0.024, -0.006, 0.004, -0.002, 0.012, 0.009, 0.021, 0.015, 0.025, 0}
	series := make([]float64, len(offsets))
	for i, o := range offsets {
		series[i] = base * (1 + o)
	}
	return series
}
