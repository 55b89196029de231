package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.Server.Addr)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 10*time.Second, cfg.Harness.NavigationTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Harness.PollInterval)
	assert.Equal(t, time.Second, cfg.Dashboard.TradeTransition)
	assert.Contains(t, cfg.Dashboard.PriceURL, "/simple/price")
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, envMap(map[string]string{
		"DASHBOARD_URL":         "http://dash.local:3000",
		"BROWSER_HEADLESS":      "false",
		"HARNESS_TIMEOUT":       "8s",
		"HARNESS_POLL_INTERVAL": "20ms",
		"TRADE_TRANSITION":      "1500ms",
		"LOG_LEVEL":             "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://dash.local:3000", cfg.Harness.ExternalURL)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 8*time.Second, cfg.Harness.Timeout)
	assert.Equal(t, 20*time.Millisecond, cfg.Harness.PollInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.Dashboard.TradeTransition)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, envMap(map[string]string{"HARNESS_TIMEOUT": "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HARNESS_TIMEOUT")

	err = applyEnv(&cfg, envMap(map[string]string{"BROWSER_HEADLESS": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROWSER_HEADLESS")
}

func TestValidate_PollMustBeShorterThanTransition(t *testing.T) {
	cfg := Default()
	cfg.Harness.PollInterval = 2 * time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade transition")
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "harness.yaml")
	yml := `
server:
  addr: ":8080"
harness:
  timeout: 3s
  poll_interval: 25ms
dashboard:
  trade_transition: 1200ms
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Harness.Timeout)
	assert.Equal(t, 25*time.Millisecond, cfg.Harness.PollInterval)
	assert.Equal(t, 1200*time.Millisecond, cfg.Dashboard.TradeTransition)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Harness.NavigationTimeout)
}

func TestLoad_MissingFilesAreFine(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Harness, cfg.Harness)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HARNESS_NAV_TIMEOUT=12s\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("HARNESS_NAV_TIMEOUT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.Harness.NavigationTimeout)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
