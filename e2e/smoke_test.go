//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
)

func TestSmoke_LoadsDashboard(t *testing.T) {
	t.Parallel()
	s := openDashboard(t, harness.NetworkIdle)

	require.NoError(t, s.AssertTitleContains("Crypto Trading Dashboard"))
	require.NoError(t, s.ByText("Crypto Trading Dashboard").AssertVisible())
	require.NoError(t, s.Locator(".ui.huge.header .bitcoin.icon").AssertVisible())
}

func TestSmoke_CryptoCardNames(t *testing.T) {
	t.Parallel()
	s := openDashboard(t, harness.NetworkIdle)

	for _, asset := range fixture.Assets() {
		require.NoError(t, s.Locator(".crypto-card .header").HasText(asset.Label()).AssertVisible(), asset.Symbol)
	}
}

func TestSmoke_Panels(t *testing.T) {
	t.Parallel()
	s := openDashboard(t, harness.NetworkIdle)

	for _, text := range []string{"Quick Trade", "Price Chart", "Recent Transactions"} {
		require.NoError(t, s.ByText(text).AssertVisible(), text)
	}
	require.NoError(t, s.Locator(".trading-panel h3").HasText("Portfolio").AssertVisible())

	dd := s.Dropdown(".ui.selection.dropdown")
	require.NoError(t, dd.Root().AssertVisible())
	require.NoError(t, dd.Summary().AssertTextEquals("Select Cryptocurrency"))
	require.NoError(t, s.Locator(`input[placeholder="0.00"]`).AssertVisible())
	require.NoError(t, s.Locator(`input[placeholder="Market Price"]`).AssertVisible())
}

func TestSmoke_PortfolioHoldings(t *testing.T) {
	t.Parallel()
	s := openDashboard(t, harness.NetworkIdle)

	for _, text := range []string{"0.5 BTC", "2.3 ETH", "Cash"} {
		require.NoError(t, s.ByText(text).AssertVisible(), text)
	}
	require.NoError(t, s.ByText("$33,039").AssertVisible())
}

func TestSmoke_PriceOutageKeepsShell(t *testing.T) {
	t.Parallel()
	s := openDashboard(t, harness.DOMContentLoaded, withPriceOutage())

	require.NoError(t, s.AssertTitleContains("Crypto Trading Dashboard"))
	require.NoError(t, s.Locator(headerLandmark).AssertVisible())
	require.NoError(t, s.Locator(headerLandmark).AssertText("Crypto Trading Dashboard"))

	assert.Eventually(t, func() bool { return s.Hits(pricePattern) >= 1 },
		cfg.Harness.Timeout, cfg.Harness.PollInterval, "price endpoint was never requested")

	// Cards keep their placeholders when price data is unavailable.
	require.NoError(t, s.Locator(".crypto-card").AssertCount(4))
	require.NoError(t, s.Locator(".crypto-card .price").First().AssertTextEquals("$--"))
	require.NoError(t, s.Locator(".crypto-card .ui.grey.label").AssertCount(4))
	require.NoError(t, s.Locator(".crypto-card .ui.green.label").AssertCount(0))
}
