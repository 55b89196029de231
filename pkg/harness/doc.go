// Package harness drives a single-page web UI through Chrome for
// end-to-end tests.
//
// A Browser owns one Chrome process for the whole test binary. Each test
// opens its own Session, an incognito browsing context with one page, so
// tests can run in parallel without sharing cookies, storage or
// interception rules.
//
// # Waiting
//
// Nothing in this package is a single-shot check. Assertions and actions
// poll the live page (Poll) at the session interval until their
// condition holds or the session timeout elapses:
//
//	if err := s.Locator(".crypto-card").AssertCount(4); err != nil {
//	    t.Fatal(err)
//	}
//
// The first probe runs immediately, so a transient state such as a
// loading class applied for one second after a click is observed even
// when it is short compared to the timeout.
//
// # Interception
//
// Rules registered with Intercept before Navigate replace matching
// requests with synthetic responses:
//
//	s.InterceptJSON("*/simple/price*", http.StatusOK, fixture.DefaultPrices())
//	s.Navigate(url, harness.Landmark(".ui.huge.header"))
//
// With WithStrictNetwork, any cross-origin request no rule matches is
// failed in the browser and reported by Mismatches.
//
// # Errors
//
// Failures match one of ErrNavigationTimeout, ErrAssertionFailure,
// ErrElementNotActionable or ErrInterceptorMismatch. Assertion failures
// carry the expected value and the last value observed.
package harness
