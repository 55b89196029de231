package harness

import (
	"errors"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// actionable waits until l resolves to one visible, enabled element that
// is not covered by another element once scrolled into view. needEditable
// additionally requires the element to accept text. The returned element
// is bounded by the session timeout.
func (l *Locator) actionable(action string, needEditable bool) (*rod.Element, error) {
	var target *rod.Element
	probe := func() (string, error) {
		el, err := l.single()
		if err != nil {
			return "", err
		}
		visible, err := el.Visible()
		if err != nil {
			return "", err
		}
		if !visible {
			return "not visible", nil
		}
		res, err := el.Eval(`function() { return !!this.disabled }`)
		if err != nil {
			return "", err
		}
		if res.Value.Bool() {
			return "disabled", nil
		}
		if needEditable {
			ok, err := editable(el)
			if err != nil {
				return "", err
			}
			if !ok {
				return "not editable", nil
			}
		}
		if err := el.ScrollIntoView(); err != nil {
			return "", err
		}
		if _, err := el.Interactable(); err != nil {
			return err.Error(), nil
		}
		target = el
		return "", nil
	}

	_, err := Poll(l.s.ctx, l.s.poller(), probe, func(reason string) bool { return reason == "" && target != nil })
	var timeout *PollTimeout[string]
	if errors.As(err, &timeout) {
		reason := timeout.Last
		if timeout.LastErr != nil {
			reason = timeout.LastErr.Error()
		}
		return nil, &ActionError{
			Action:  action,
			Target:  l.String(),
			Reason:  reason,
			Timeout: l.s.cfg.timeout,
			Err:     timeout.LastErr,
		}
	}
	if err != nil {
		return nil, err
	}
	return target.Timeout(l.s.cfg.timeout), nil
}

// actionFailed reports an action that errored after its target passed the
// actionability checks, such as an element covered between probe and
// click.
func (l *Locator) actionFailed(action string, err error) error {
	return &ActionError{
		Action:  action,
		Target:  l.String(),
		Reason:  err.Error(),
		Timeout: l.s.cfg.timeout,
		Err:     err,
	}
}

// Click waits for the single match to be actionable, then clicks it with
// the left mouse button.
func (l *Locator) Click() error {
	el, err := l.actionable("Click", false)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return l.actionFailed("Click", err)
	}
	l.s.log.Debug().Str("target", l.String()).Msg("clicked")
	return nil
}

// Fill waits for the single match to be editable, clears it and types
// text into it.
func (l *Locator) Fill(text string) error {
	el, err := l.actionable("Fill", true)
	if err != nil {
		return err
	}
	if _, err := el.Eval(`function() { this.value = '' }`); err != nil {
		return l.actionFailed("Fill", err)
	}
	if err := el.Input(text); err != nil {
		return l.actionFailed("Fill", err)
	}
	l.s.log.Debug().Str("target", l.String()).Str("text", text).Msg("filled")
	return nil
}
