package harness

import "fmt"

// Dropdown drives a collapsible selection control: a root element that
// opens a ".menu" of ".item" options when clicked, and a ".text" summary
// showing the current choice. Options carry a data-value token.
type Dropdown struct {
	root *Locator
}

// Dropdown returns a driver for the selection control matching css.
func (s *Session) Dropdown(css string) *Dropdown {
	return &Dropdown{root: s.Locator(css)}
}

// Root is the control itself.
func (d *Dropdown) Root() *Locator { return d.root }

// Menu is the collapsible option list.
func (d *Dropdown) Menu() *Locator { return d.root.Locator(".menu") }

// Options matches every option in the list.
func (d *Dropdown) Options() *Locator { return d.root.Locator(".menu .item") }

// Option matches the option whose data-value is value.
func (d *Dropdown) Option(value string) *Locator {
	return d.Options().WithAttr("data-value", value)
}

// Summary is the element showing the selected option's label.
func (d *Dropdown) Summary() *Locator { return d.root.Locator(".text").First() }

// Open clicks the control unless the list is already showing, then waits
// for the list to become visible.
func (d *Dropdown) Open() error {
	open, err := d.Menu().Visible()
	if err != nil || !open {
		if err := d.root.Click(); err != nil {
			return fmt.Errorf("open dropdown: %w", err)
		}
	}
	return d.Menu().AssertVisible()
}

// Close dismisses the list by clicking outside it.
func (d *Dropdown) Close() error {
	if err := d.root.s.ClickOutside(); err != nil {
		return err
	}
	return d.Menu().AssertHidden()
}

// Select opens the list, picks the option with the given data-value and
// waits until the summary shows exactly that option's label. It returns
// the label. Selecting again replaces the previous choice.
func (d *Dropdown) Select(value string) (string, error) {
	if err := d.Open(); err != nil {
		return "", err
	}

	opt := d.Option(value)
	if err := opt.AssertVisible(); err != nil {
		return "", fmt.Errorf("select %q: %w", value, err)
	}
	label, err := opt.Text()
	if err != nil {
		return "", fmt.Errorf("select %q: read label: %w", value, err)
	}
	if err := opt.Click(); err != nil {
		return "", fmt.Errorf("select %q: %w", value, err)
	}
	if err := d.Summary().AssertTextEquals(label); err != nil {
		return "", fmt.Errorf("select %q: %w", value, err)
	}

	d.root.s.log.Debug().Str("value", value).Str("label", label).Msg("dropdown selected")
	return label, nil
}

// Selected returns the label the summary shows right now.
func (d *Dropdown) Selected() (string, error) {
	return d.Summary().Text()
}
