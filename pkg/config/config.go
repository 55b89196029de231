// Package config loads settings for the dashboard server, the soak runner
// and the e2e suites.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Defaults from Default()
//  2. An optional YAML file
//  3. Environment variables, after loading an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ben-windsurf/crypto-web-application/pkg/logger"
)

// Config is the full settings tree.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Browser   BrowserConfig   `yaml:"browser"`
	Harness   HarnessConfig   `yaml:"harness"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       logger.Config   `yaml:"log"`
}

// ServerConfig configures the dashboard page server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"` // Empty leaves the choice to the caller
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// BrowserConfig configures the Chrome launch.
type BrowserConfig struct {
	Headless bool   `yaml:"headless"`
	Bin      string `yaml:"bin"` // Empty lets rod download or find Chromium
}

// HarnessConfig holds the bounded-wait settings of the test harness.
type HarnessConfig struct {
	Timeout           time.Duration `yaml:"timeout"`            // Assertion and action bound
	PollInterval      time.Duration `yaml:"poll_interval"`      // Delay between assertion probes
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // Readiness bound for Navigate
	ExternalURL       string        `yaml:"external_url"`       // Run against a deployed page instead of the embedded server
}

// DashboardConfig holds behavior knobs of the dashboard page.
type DashboardConfig struct {
	PriceURL        string        `yaml:"price_url"`
	TradeTransition time.Duration `yaml:"trade_transition"`
}

// DefaultPriceURL is the simple-price endpoint the page fetches.
const DefaultPriceURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin,ethereum,cardano,solana&vs_currencies=usd&include_24hr_change=true"

// Default returns settings suitable for local test runs.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Harness: HarnessConfig{
			Timeout:           5 * time.Second,
			PollInterval:      50 * time.Millisecond,
			NavigationTimeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			PriceURL:        DefaultPriceURL,
			TradeTransition: time.Second,
		},
		Log: logger.Config{
			Level:      "info",
			TimeFormat: time.RFC3339,
		},
	}
}

// Load resolves the configuration. path may be empty; a missing YAML file
// or .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the harness cannot work with.
func (c Config) Validate() error {
	if c.Harness.Timeout <= 0 {
		return errors.New("harness timeout must be positive")
	}
	if c.Harness.PollInterval <= 0 {
		return errors.New("harness poll interval must be positive")
	}
	if c.Harness.PollInterval >= c.Dashboard.TradeTransition {
		return fmt.Errorf("poll interval %v must be shorter than the trade transition %v",
			c.Harness.PollInterval, c.Dashboard.TradeTransition)
	}
	if c.Harness.NavigationTimeout <= 0 {
		return errors.New("navigation timeout must be positive")
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	if v, ok := lookup("DASHBOARD_URL"); ok {
		cfg.Harness.ExternalURL = v
	}
	if v, ok := lookup("DASHBOARD_PRICE_URL"); ok {
		cfg.Dashboard.PriceURL = v
	}
	if v, ok := lookup("DASHBOARD_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := lookup("BROWSER_BIN"); ok {
		cfg.Browser.Bin = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"BROWSER_HEADLESS", &cfg.Browser.Headless},
		{"LOG_PRETTY", &cfg.Log.Pretty},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HARNESS_TIMEOUT", &cfg.Harness.Timeout},
		{"HARNESS_POLL_INTERVAL", &cfg.Harness.PollInterval},
		{"HARNESS_NAV_TIMEOUT", &cfg.Harness.NavigationTimeout},
		{"TRADE_TRANSITION", &cfg.Dashboard.TradeTransition},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}
