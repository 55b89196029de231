//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
)

// pricePattern matches the simple-price endpoint the page polls.
const pricePattern = "*/simple/price*"

// headerLandmark signals that the dashboard shell has rendered.
const headerLandmark = ".ui.huge.header"

type setupFunc func(*harness.Session) error

// withPrices serves p for the price endpoint.
func withPrices(p fixture.Prices) setupFunc {
	return func(s *harness.Session) error {
		return s.InterceptJSON(pricePattern, http.StatusOK, p)
	}
}

// withPriceOutage makes the price endpoint fail with a 500.
func withPriceOutage() setupFunc {
	return func(s *harness.Session) error {
		return s.Intercept(pricePattern, harness.Response{
			Status: http.StatusInternalServerError,
			Body:   []byte(`{"error":"API unavailable"}`),
		})
	}
}

func sessionOptions(extra ...harness.Option) []harness.Option {
	return append([]harness.Option{
		harness.WithTimeout(cfg.Harness.Timeout),
		harness.WithPollInterval(cfg.Harness.PollInterval),
		harness.WithNavigationTimeout(cfg.Harness.NavigationTimeout),
	}, extra...)
}

// newSession opens an isolated session that is closed when t ends.
func newSession(t *testing.T, opts ...harness.Option) *harness.Session {
	t.Helper()
	s, err := browser.NewSession(testContext(t), sessionOptions(opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

// openDashboard opens a strict session, installs the setups followed by
// the default price fixture and navigates to the dashboard. Setups run
// first, so they take precedence over the default fixture. The test
// fails if any request escaped interception.
func openDashboard(t *testing.T, ready harness.Readiness, setups ...setupFunc) *harness.Session {
	t.Helper()
	s := newSession(t, harness.WithStrictNetwork())
	t.Cleanup(func() {
		assert.Empty(t, s.Mismatches(), "requests escaped interception")
	})

	for _, setup := range append(setups, withPrices(fixture.DefaultPrices())) {
		require.NoError(t, setup(s))
	}
	require.NoError(t, s.Navigate(baseURL, ready))
	return s
}

// pastTransition is a wait strictly longer than the trade button's
// loading window.
func pastTransition() time.Duration {
	return cfg.Dashboard.TradeTransition + 250*time.Millisecond
}

// testContext returns a context canceled when t ends
// (stand-in for testing.T.Context, which needs Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
