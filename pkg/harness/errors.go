package harness

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. Every failure returned by the harness matches exactly
// one of these with errors.Is.
var (
	ErrNavigationTimeout    = errors.New("navigation timeout")
	ErrAssertionFailure     = errors.New("assertion failed")
	ErrElementNotActionable = errors.New("element not actionable")
	ErrInterceptorMismatch  = errors.New("no interceptor matched request")
)

// NavigationError reports a page that did not reach its readiness
// condition.
type NavigationError struct {
	URL     string
	Ready   Readiness
	Timeout time.Duration
	Err     error
}

func (e *NavigationError) Error() string {
	if e.timedOut() {
		return fmt.Sprintf("navigate %s: %s not reached within %v", e.URL, e.Ready, e.Timeout)
	}
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Is matches ErrNavigationTimeout only when the wait ran out of time.
func (e *NavigationError) Is(target error) bool {
	return target == ErrNavigationTimeout && e.timedOut()
}

func (e *NavigationError) timedOut() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// AssertionError reports a condition that never held within the bound.
// Actual is the last value observed before the deadline.
type AssertionError struct {
	Assertion string
	Target    string
	Expected  any
	Actual    any
	LastErr   error // Last probe error, if the final probe failed
	Timeout   time.Duration
	Attempts  int
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("%s(%s): expected %v, got %v after %v (%d attempts)",
		e.Assertion, e.Target, quote(e.Expected), quote(e.Actual), e.Timeout, e.Attempts)
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	return msg
}

func (e *AssertionError) Unwrap() error { return e.LastErr }

func (e *AssertionError) Is(target error) bool { return target == ErrAssertionFailure }

// ActionError reports an interaction target that never became actionable.
type ActionError struct {
	Action  string
	Target  string
	Reason  string
	Timeout time.Duration
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s(%s): not actionable after %v: %s", e.Action, e.Target, e.Timeout, e.Reason)
}

func (e *ActionError) Unwrap() error { return e.Err }

func (e *ActionError) Is(target error) bool { return target == ErrElementNotActionable }

// MismatchError records an outgoing request that no interception rule
// matched while the session was in strict network mode. The request was
// failed in the browser, not sent.
type MismatchError struct {
	Method string
	URL    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, ErrInterceptorMismatch)
}

func (e *MismatchError) Is(target error) bool { return target == ErrInterceptorMismatch }

func quote(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
