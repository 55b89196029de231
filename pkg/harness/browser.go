package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BrowserConfig configures Chrome launch options.
type BrowserConfig struct {
	Headless bool   // Run in headless mode (default: true)
	Bin      string // Chrome binary; empty lets rod find or download one
	Logger   zerolog.Logger
}

// DefaultBrowserConfig returns sensible defaults for E2E testing.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless: true,
		Logger:   zerolog.Nop(),
	}
}

// Browser owns one Chrome process. Tests share it and isolate themselves
// with one incognito Session each.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	log      zerolog.Logger
}

// NewBrowser launches Chrome and connects to it.
// The browser is configured with:
//   - No sandbox (for container compatibility)
//   - No GPU
//   - No first-run or default-browser prompts
func NewBrowser(cfg BrowserConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	cfg.Logger.Debug().Str("control_url", url).Msg("browser connected")
	return &Browser{
		launcher: l,
		browser:  browser,
		log:      cfg.Logger,
	}, nil
}

// NewSession opens an isolated browsing context with a single blank page.
// The session lives until Close or until ctx is done.
func (b *Browser) NewSession(ctx context.Context, opts ...Option) (*Session, error) {
	cfg, err := newSessionConfig(opts...)
	if err != nil {
		return nil, err
	}

	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create browsing context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:        id,
		ctx:       ctx,
		cancel:    cancel,
		incognito: incognito,
		rawPage:   page,
		page:      page.Context(ctx),
		cfg:       cfg,
		log:       cfg.log.With().Str("session", id).Logger(),
	}
	s.log.Debug().Msg("session opened")
	return s, nil
}

// PID is the process ID of the Chrome this Browser launched.
func (b *Browser) PID() int {
	return b.launcher.PID()
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.launcher.Cleanup()
	b.log.Debug().Msg("browser closed")
	return err
}

// closeTimeout bounds teardown so a hung target cannot block a test.
const closeTimeout = 5 * time.Second
