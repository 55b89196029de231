//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ben-windsurf/crypto-web-application/cmd/dashboard/server"
	"github.com/ben-windsurf/crypto-web-application/pkg/config"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
	"github.com/ben-windsurf/crypto-web-application/pkg/logger"
)

var (
	cfg     config.Config
	browser *harness.Browser
	baseURL string
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	var err error
	cfg, err = config.Load(os.Getenv("HARNESS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: config: %v\n", err)
		return 1
	}
	cfg.Log.Component = "e2e"
	log := logger.NewWithConfig(cfg.Log)

	baseURL = cfg.Harness.ExternalURL
	if baseURL == "" {
		srv, err := server.NewServer(server.FromConfig(cfg, log))
		if err != nil {
			fmt.Fprintf(os.Stderr, "e2e: failed to create server: %v\n", err)
			return 1
		}
		if _, err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "e2e: failed to start server: %v\n", err)
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		baseURL = srv.URL()
	}

	browserCfg := harness.DefaultBrowserConfig()
	browserCfg.Headless = cfg.Browser.Headless
	browserCfg.Bin = cfg.Browser.Bin
	browserCfg.Logger = log
	browser, err = harness.NewBrowser(browserCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: %v\n", err)
		return 1
	}
	defer func() {
		pid := browser.PID()
		if err := browser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "e2e: browser close: %v\n", err)
			killBrowser(pid)
		}
	}()

	log.Info().Str("url", baseURL).Msg("running e2e suites")
	return m.Run()
}

// killBrowser kills the Chrome this run launched when a graceful close
// failed. Other Chrome processes on the host are left alone.
func killBrowser(pid int) {
	if pid <= 0 {
		return
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	// The process may already be gone.
	_ = p.Kill()
}
