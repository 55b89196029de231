package harness

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Readiness is the condition Navigate waits for before returning.
type Readiness struct {
	kind     readyKind
	selector string
}

type readyKind int

const (
	readyDOMContentLoaded readyKind = iota
	readyNetworkIdle
	readyLandmark
)

var (
	// DOMContentLoaded waits until the document has been parsed.
	DOMContentLoaded = Readiness{kind: readyDOMContentLoaded}
	// NetworkIdle waits until the page has had no network activity for
	// a short quiet period.
	NetworkIdle = Readiness{kind: readyNetworkIdle}
)

// Landmark waits until an element matching selector is attached.
func Landmark(selector string) Readiness {
	return Readiness{kind: readyLandmark, selector: selector}
}

func (r Readiness) String() string {
	switch r.kind {
	case readyNetworkIdle:
		return "network idle"
	case readyLandmark:
		return fmt.Sprintf("landmark %q", r.selector)
	default:
		return "DOMContentLoaded"
	}
}

// Session is one isolated browsing context driving a single page.
// A Session must not be shared between tests.
type Session struct {
	ID string

	ctx       context.Context
	cancel    context.CancelFunc
	incognito *rod.Browser
	rawPage   *rod.Page
	page      *rod.Page // rawPage bound to ctx
	cfg       sessionConfig
	log       zerolog.Logger

	mu         sync.Mutex
	rules      []*rule
	router     *rod.HijackRouter
	navigated  bool
	origin     string
	mismatches []*MismatchError
}

// Page returns the underlying rod page for checks the harness does not
// cover.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Context returns the session context. It is canceled by Close.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) poller() Poller {
	return Poller{Interval: s.cfg.interval, Timeout: s.cfg.timeout, Clock: s.cfg.clock}
}

// Navigate loads url and waits for ready. Interception rules must be
// installed before the first call.
func (s *Session) Navigate(rawURL string, ready Readiness) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}

	s.mu.Lock()
	s.navigated = true
	s.origin = u.Scheme + "://" + u.Host
	s.mu.Unlock()

	if err := s.startRouter(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.navTimeout)
	defer cancel()
	p := s.page.Context(ctx)

	var wait func()
	switch ready.kind {
	case readyDOMContentLoaded:
		wait = p.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	case readyNetworkIdle:
		wait = p.WaitNavigation(proto.PageLifecycleEventNameNetworkIdle)
	}

	start := time.Now()
	if err := p.Navigate(rawURL); err != nil {
		return s.navigationError(ctx, rawURL, ready, err)
	}
	if wait != nil {
		wait()
	}
	if ready.kind == readyLandmark {
		if _, err := p.Element(ready.selector); err != nil {
			return s.navigationError(ctx, rawURL, ready, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return s.navigationError(ctx, rawURL, ready, err)
	}

	s.log.Debug().
		Str("url", rawURL).
		Stringer("ready", ready).
		Dur("elapsed", time.Since(start)).
		Msg("navigated")
	return nil
}

func (s *Session) navigationError(ctx context.Context, rawURL string, ready Readiness, err error) error {
	if ctx.Err() != nil && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return &NavigationError{URL: rawURL, Ready: ready, Timeout: s.cfg.navTimeout, Err: err}
}

// Title returns the document title.
func (s *Session) Title() (string, error) {
	res, err := s.page.Eval(`() => document.title`)
	if err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}
	return res.Value.Str(), nil
}

// AssertTitle polls until the document title equals want.
func (s *Session) AssertTitle(want string) error {
	return s.expect("AssertTitle", "document", want, s.Title, func(got string) bool {
		return got == want
	})
}

// AssertTitleContains polls until the document title contains substr.
func (s *Session) AssertTitleContains(substr string) error {
	return s.expect("AssertTitleContains", "document", substr, s.Title, func(got string) bool {
		return strings.Contains(got, substr)
	})
}

// ClickOutside dispatches a click on the document body, the way a user
// dismisses an open popup by clicking empty space.
func (s *Session) ClickOutside() error {
	_, err := s.page.Eval(`() => document.body.dispatchEvent(new MouseEvent('click', {bubbles: true}))`)
	if err != nil {
		return fmt.Errorf("click outside: %w", err)
	}
	return nil
}

// Eval executes JavaScript in the page and returns the result.
func (s *Session) Eval(js string, args ...any) (any, error) {
	res, err := s.page.Eval(js, args...)
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return res.Value.Val(), nil
}

// Sleep suspends the test for d. Use it to wait strictly past a fixed UI
// transition before asserting its end state.
func (s *Session) Sleep(d time.Duration) error {
	return s.cfg.clock.Sleep(s.ctx, d)
}

// Close stops interception and disposes of the page and its browsing
// context. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	router := s.router
	s.router = nil
	s.mu.Unlock()

	var errs []error
	if router != nil {
		if err := router.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop interception: %w", err))
		}
	}

	if s.incognito != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := s.rawPage.Context(ctx).Close(); err != nil {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
		if err := s.incognito.Context(ctx).Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browsing context: %w", err))
		}
		s.incognito = nil
	}
	s.cancel()

	s.log.Debug().Int("mismatches", len(s.Mismatches())).Msg("session closed")
	return errors.Join(errs...)
}

// expect runs a polling assertion and converts a timeout into an
// AssertionError.
func (s *Session) expect(name, target string, expected any, probe func() (string, error), cond func(string) bool) error {
	return expectPoll(s, name, target, expected, probe, cond)
}

func expectPoll[T any](s *Session, name, target string, expected any, probe func() (T, error), cond func(T) bool) error {
	_, err := Poll(s.ctx, s.poller(), probe, cond)
	var timeout *PollTimeout[T]
	if errors.As(err, &timeout) {
		s.log.Debug().
			Str("assertion", name).
			Str("target", target).
			Int("attempts", timeout.Attempts).
			Msg("assertion failed")
		return &AssertionError{
			Assertion: name,
			Target:    target,
			Expected:  expected,
			Actual:    timeout.Last,
			LastErr:   timeout.LastErr,
			Timeout:   s.cfg.timeout,
			Attempts:  timeout.Attempts,
		}
	}
	return err
}
