package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
	"github.com/ben-windsurf/crypto-web-application/pkg/harness"
)

// scenario drives one session. It returns the observed transition time
// for scenarios that measure one, zero otherwise.
type scenario struct {
	name string
	run  func(s *harness.Session, transition time.Duration) (time.Duration, error)
}

var scenarios = []scenario{
	{name: "buy loading transition", run: buttonTransition("Buy", ".ui.green.button")},
	{name: "sell loading transition", run: buttonTransition("Sell", ".ui.red.button")},
	{name: "dropdown reselection", run: dropdownReselection},
}

func runScenario(ctx context.Context, b *harness.Browser, target string, sc scenario, transition time.Duration, opts []harness.Option) (time.Duration, error) {
	s, err := b.NewSession(ctx, opts...)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	if err := s.InterceptJSON("*/simple/price*", http.StatusOK, fixture.DefaultPrices()); err != nil {
		return 0, err
	}
	if err := s.Navigate(target, harness.Landmark(".ui.huge.header")); err != nil {
		return 0, err
	}

	elapsed, err := sc.run(s, transition)
	if err != nil {
		return 0, err
	}
	if m := s.Mismatches(); len(m) > 0 {
		return 0, m[0]
	}
	return elapsed, nil
}

func buttonTransition(label, css string) func(*harness.Session, time.Duration) (time.Duration, error) {
	return func(s *harness.Session, transition time.Duration) (time.Duration, error) {
		button := s.Locator(css).HasText(label)
		if err := button.Click(); err != nil {
			return 0, err
		}
		clicked := time.Now()
		if err := button.AssertClass("loading"); err != nil {
			return 0, err
		}
		if err := button.AssertNoClass("loading"); err != nil {
			return 0, err
		}
		elapsed := time.Since(clicked)
		if elapsed < transition/2 {
			return elapsed, fmt.Errorf("loading cleared after %v, expected about %v", elapsed, transition)
		}
		return elapsed, nil
	}
}

func dropdownReselection(s *harness.Session, _ time.Duration) (time.Duration, error) {
	d := s.Dropdown(".ui.selection.dropdown")
	if _, err := d.Select("btc"); err != nil {
		return 0, err
	}
	if _, err := d.Select("eth"); err != nil {
		return 0, err
	}
	return 0, d.Summary().AssertTextEquals("Ethereum (ETH)")
}
