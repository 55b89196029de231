//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-windsurf/crypto-web-application/cmd/dashboard/server"
	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
)

// startLocalPriceServer runs a dashboard whose page fetches prices from
// the server's own API.
func startLocalPriceServer(t *testing.T) string {
	t.Helper()
	srvCfg := server.DefaultConfig()
	srvCfg.PriceURL = server.LocalPriceURL
	srvCfg.TradeTransition = cfg.Dashboard.TradeTransition

	srv, err := server.NewServer(srvCfg)
	require.NoError(t, err)
	_, err = srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, srv.Shutdown(ctx))
	})
	return srv.URL()
}

func TestAPI_PricesFromLocalServer(t *testing.T) {
	t.Parallel()
	url := startLocalPriceServer(t)

	// Strict with no rules: every request must stay on the page's origin.
	s := newSession(t, harness.WithStrictNetwork())
	require.NoError(t, s.Navigate(url, harness.NetworkIdle))

	prices := fixture.DefaultPrices()
	for _, asset := range fixture.Assets() {
		q, err := prices.Quote(asset.CoinID)
		require.NoError(t, err)

		card := s.Locator(".crypto-card").WithAttr("data-coin", asset.CoinID)
		require.NoError(t, card.Locator(".price").AssertTextEquals(fixture.FormatUSD(q.USD, 2)), asset.Symbol)
		require.NoError(t, card.Locator(".change").AssertTextEquals(fixture.FormatPercent(q.Change24h)), asset.Symbol)
	}
	require.NoError(t, s.Locator(`.crypto-card[data-coin="bitcoin"] .price`).AssertTextEquals("$43,250.00"))
	require.NoError(t, s.Locator(`.crypto-card[data-coin="cardano"] .ui.label`).AssertClass("red"))

	assert.Empty(t, s.Mismatches())
	assert.Zero(t, s.Hits(pricePattern))
}
