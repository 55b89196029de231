// Package server provides an importable HTTP server for the dashboard page.
// This allows E2E tests to programmatically start/stop the server without running main().
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ben-windsurf/crypto-web-application/pkg/config"
	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
)

// Title is the document title and main header of the dashboard.
const Title = "Crypto Trading Dashboard"

// Config holds server configuration options.
type Config struct {
	Addr            string        // Listen address (e.g., ":8080" or ":0" for random port)
	ReadTimeout     time.Duration // HTTP read timeout
	WriteTimeout    time.Duration // HTTP write timeout
	PriceURL        string        // Endpoint the page fetches live prices from
	TradeTransition time.Duration // How long Buy/Sell keep their loading state
	Prices          fixture.Prices
	Portfolio       fixture.Portfolio
	Transactions    []fixture.Transaction
	Logger          zerolog.Logger
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:            ":0",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		PriceURL:        config.DefaultPriceURL,
		TradeTransition: time.Second,
		Prices:          fixture.DefaultPrices(),
		Portfolio:       fixture.DefaultPortfolio(),
		Transactions:    fixture.DefaultTransactions(),
		Logger:          zerolog.Nop(),
	}
}

// FromConfig maps the shared settings onto a server Config. An unset
// listen address keeps the random port of DefaultConfig.
func FromConfig(cfg config.Config, log zerolog.Logger) Config {
	c := DefaultConfig()
	if cfg.Server.Addr != "" {
		c.Addr = cfg.Server.Addr
	}
	c.ReadTimeout = cfg.Server.ReadTimeout
	c.WriteTimeout = cfg.Server.WriteTimeout
	c.PriceURL = cfg.Dashboard.PriceURL
	c.TradeTransition = cfg.Dashboard.TradeTransition
	c.Logger = log
	return c
}

// Server serves the dashboard page.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        zerolog.Logger
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer renders the page once from cfg and builds the router.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	if cfg.TradeTransition <= 0 {
		return nil, errors.New("trade transition must be positive")
	}

	data, err := newPageData(cfg)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}
	tmpl, err := template.New("dashboard").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard", data)
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewAPIHandler(cfg).SetupRoutes(router)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		log:        cfg.Logger,
	}, nil
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	}
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("dashboard server stopped")
		}
	}()

	s.log.Info().Str("addr", s.addr).Msg("dashboard server listening")
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	s.addr = ""
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns a browser-usable base URL for the running server. Wildcard
// listen addresses are mapped to 127.0.0.1.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	return "http://127.0.0.1:" + port
}
