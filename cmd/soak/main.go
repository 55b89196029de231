// Soak test runner for the dashboard's race-prone UI transitions.
//
// This tool starts the dashboard server and one browser, then replays the
// Buy/Sell loading transition and the dropdown reselection scenarios in
// fresh sessions until the iteration count or duration is reached. Any
// failure, or a transition that outlives its configured window by more
// than half, fails the run.
//
// Usage:
//
//	go run ./cmd/soak -iterations 200
//	go run ./cmd/soak -duration 30m -config harness.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ben-windsurf/crypto-web-application/cmd/dashboard/server"
	"github.com/ben-windsurf/crypto-web-application/pkg/config"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
	"github.com/ben-windsurf/crypto-web-application/pkg/logger"
)

// SoakResult contains the results of a soak test run.
type SoakResult struct {
	Duration          time.Duration
	Iterations        int
	Failures          int
	SlowestTransition time.Duration
	Status            string
}

func main() {
	iterations := flag.Int("iterations", 100, "Number of scenario rounds (0 = until -duration)")
	duration := flag.Duration("duration", 0, "Maximum run time (0 = until -iterations)")
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.Component = "soak"
	log := logger.NewWithConfig(cfg.Log)

	fmt.Printf("Dashboard Soak Test Runner\n")
	fmt.Printf("==========================\n")
	fmt.Printf("Iterations: %d\n", *iterations)
	fmt.Printf("Duration:   %v\n", *duration)
	fmt.Printf("Transition: %v\n", cfg.Dashboard.TradeTransition)
	fmt.Printf("\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived %v, shutting down gracefully...\n", sig)
		cancel()
	}()

	result, err := run(ctx, cfg, *iterations, log)
	if err != nil {
		log.Error().Err(err).Msg("soak setup failed")
		os.Exit(1)
	}

	printSummary(result, cfg.Dashboard.TradeTransition)
	if result.Status == "PASS" {
		os.Exit(0)
	}
	os.Exit(1)
}

func run(ctx context.Context, cfg config.Config, iterations int, log zerolog.Logger) (SoakResult, error) {
	target := cfg.Harness.ExternalURL
	if target == "" {
		srv, err := server.NewServer(server.FromConfig(cfg, log))
		if err != nil {
			return SoakResult{}, err
		}
		if _, err := srv.Start(); err != nil {
			return SoakResult{}, err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		target = srv.URL()
	}

	browserCfg := harness.DefaultBrowserConfig()
	browserCfg.Headless = cfg.Browser.Headless
	browserCfg.Bin = cfg.Browser.Bin
	browserCfg.Logger = log
	browser, err := harness.NewBrowser(browserCfg)
	if err != nil {
		return SoakResult{}, err
	}
	defer browser.Close()

	opts := []harness.Option{
		harness.WithTimeout(cfg.Harness.Timeout),
		harness.WithPollInterval(cfg.Harness.PollInterval),
		harness.WithNavigationTimeout(cfg.Harness.NavigationTimeout),
		harness.WithStrictNetwork(),
		harness.WithLogger(log),
	}

	result := SoakResult{Status: "PASS"}
	start := time.Now()
	fmt.Printf("[%s] Starting soak test against %s...\n", formatDuration(0), target)

	playRounds(ctx, iterations, &result, start, func(round int) {
		for _, sc := range scenarios {
			elapsed, err := runScenario(ctx, browser, target, sc, cfg.Dashboard.TradeTransition, opts)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				result.Failures++
				fmt.Printf("[%s] FAIL %s (round %d): %v\n", formatDuration(time.Since(start)), sc.name, round, err)
				continue
			}
			if elapsed > result.SlowestTransition {
				result.SlowestTransition = elapsed
			}
		}
	})

	result.Duration = time.Since(start)
	result.Status = evaluate(result, cfg.Dashboard.TradeTransition)
	return result, nil
}

// playRounds calls round until iterations rounds have run, or forever when
// iterations is 0, stopping once ctx is done. A round that ends with ctx
// done was cut short and is not counted.
func playRounds(ctx context.Context, iterations int, result *SoakResult, start time.Time, round func(n int)) {
	for iterations == 0 || result.Iterations < iterations {
		if ctx.Err() != nil {
			return
		}
		round(result.Iterations + 1)
		if ctx.Err() != nil {
			return
		}
		result.Iterations++
		if result.Iterations%10 == 0 {
			fmt.Printf("[%s] Rounds: %d, Failures: %d, Slowest transition: %v\n",
				formatDuration(time.Since(start)), result.Iterations, result.Failures, result.SlowestTransition)
		}
	}
}

// evaluate applies the pass criteria.
func evaluate(r SoakResult, transition time.Duration) string {
	if r.Failures > 0 || r.Iterations == 0 {
		return "FAIL"
	}
	if r.SlowestTransition > transition+transition/2 {
		return "FAIL"
	}
	return "PASS"
}

func printSummary(result SoakResult, transition time.Duration) {
	fmt.Printf("\n")
	fmt.Printf("Soak Test Complete\n")
	fmt.Printf("==================\n")
	fmt.Printf("Duration:           %v\n", result.Duration.Round(time.Second))
	fmt.Printf("Rounds:             %d\n", result.Iterations)
	fmt.Printf("Failures:           %d\n", result.Failures)
	fmt.Printf("Slowest transition: %v\n", result.SlowestTransition.Round(time.Millisecond))
	fmt.Printf("Status:             %s\n", result.Status)
	fmt.Printf("\n")

	fmt.Printf("Pass Criteria:\n")
	fmt.Printf("  - At least one round:        %s\n", checkMark(result.Iterations > 0))
	fmt.Printf("  - No scenario failures:      %s\n", checkMark(result.Failures == 0))
	fmt.Printf("  - Transition < %v: %s\n", transition+transition/2, checkMark(result.SlowestTransition <= transition+transition/2))
}

func formatDuration(d time.Duration) string {
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func checkMark(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}
