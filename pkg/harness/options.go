package harness

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ben-windsurf/crypto-web-application/pkg/harness/internal"
)

// Default bounds for a session.
const (
	DefaultTimeout           = 5 * time.Second
	DefaultPollInterval      = 50 * time.Millisecond
	DefaultNavigationTimeout = 10 * time.Second
)

// Option configures a Session.
type Option func(*sessionConfig) error

type sessionConfig struct {
	timeout    time.Duration
	interval   time.Duration
	navTimeout time.Duration
	strict     bool
	log        zerolog.Logger
	clock      internal.Clock
}

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		timeout:    DefaultTimeout,
		interval:   DefaultPollInterval,
		navTimeout: DefaultNavigationTimeout,
		log:        zerolog.Nop(),
		clock:      internal.MonotonicClock{},
	}
}

func newSessionConfig(opts ...Option) (sessionConfig, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.interval >= cfg.timeout {
		return cfg, errors.New("poll interval must be shorter than the timeout")
	}
	return cfg, nil
}

// WithTimeout sets the bound for assertions and actionability waits.
// Default: 5s
func WithTimeout(d time.Duration) Option {
	return func(c *sessionConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = d
		return nil
	}
}

// WithPollInterval sets the delay between assertion probes. Keep it well
// under the shortest UI transition being asserted.
// Default: 50ms
func WithPollInterval(d time.Duration) Option {
	return func(c *sessionConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		c.interval = d
		return nil
	}
}

// WithNavigationTimeout sets the readiness bound for Navigate.
// Default: 10s
func WithNavigationTimeout(d time.Duration) Option {
	return func(c *sessionConfig) error {
		if d <= 0 {
			return errors.New("navigation timeout must be positive")
		}
		c.navTimeout = d
		return nil
	}
}

// WithStrictNetwork fails every cross-origin request that no interception
// rule matches and records it as a MismatchError.
func WithStrictNetwork() Option {
	return func(c *sessionConfig) error {
		c.strict = true
		return nil
	}
}

// WithLogger sets the session logger. Default: disabled.
func WithLogger(l zerolog.Logger) Option {
	return func(c *sessionConfig) error {
		c.log = l
		return nil
	}
}

func withClock(clock internal.Clock) Option {
	return func(c *sessionConfig) error {
		c.clock = clock
		return nil
	}
}
