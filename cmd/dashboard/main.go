// Dashboard Page Server
//
// This server renders the crypto trading dashboard from the fixture data
// so the page can be opened by hand or targeted by the e2e suites through
// DASHBOARD_URL.
//
// Usage:
//
//	go run ./cmd/dashboard -addr :8080
//	go run ./cmd/dashboard -config harness.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ben-windsurf/crypto-web-application/cmd/dashboard/server"
	"github.com/ben-windsurf/crypto-web-application/pkg/config"
	"github.com/ben-windsurf/crypto-web-application/pkg/logger"
)

const defaultAddr = ":8080"

// listenAddr picks the listen address: an explicit -addr flag, then the
// configured address, then the flag default.
func listenAddr(flagAddr string, flagSet bool, configured string) string {
	switch {
	case flagSet:
		return flagAddr
	case configured != "":
		return configured
	default:
		return defaultAddr
	}
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", defaultAddr, "Listen address (overrides config and DASHBOARD_ADDR)")
	flag.Parse()

	addrSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "addr" {
			addrSet = true
		}
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.Component = "dashboard"
	log := logger.NewWithConfig(cfg.Log)

	srvCfg := server.FromConfig(cfg, log)
	srvCfg.Addr = listenAddr(*addr, addrSet, cfg.Server.Addr)

	srv, err := server.NewServer(srvCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	if _, err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	fmt.Printf("Dashboard ready on %s\n", srv.URL())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
