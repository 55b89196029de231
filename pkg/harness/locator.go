package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-rod/rod"
)

// Locator is a lazy element query. It is resolved again on every probe,
// so it follows the page as it re-renders.
type Locator struct {
	s      *Session
	parent *Locator
	css    string
	steps  []step
}

type step struct {
	desc  string
	apply func([]*rod.Element) ([]*rod.Element, error)
}

// Locator returns a locator for elements matching css anywhere in the page.
func (s *Session) Locator(css string) *Locator {
	return &Locator{s: s, css: css}
}

// ByText locates the elements that directly contain text in one of their
// own text nodes, ignoring case and surrounding whitespace.
func (s *Session) ByText(text string) *Locator {
	l := &Locator{s: s, css: "body *"}
	return l.with(fmt.Sprintf("text=%q", text), func(els []*rod.Element) ([]*rod.Element, error) {
		return keep(els, func(el *rod.Element) (bool, error) {
			res, err := el.Eval(`function(t) {
				t = t.toLowerCase();
				return Array.from(this.childNodes).some(n =>
					n.nodeType === Node.TEXT_NODE &&
					n.textContent.replace(/\s+/g, ' ').trim().toLowerCase().includes(t));
			}`, normalizeSpace(text))
			if err != nil {
				return false, err
			}
			return res.Value.Bool(), nil
		})
	})
}

// Locator returns a locator for elements matching css inside every
// element l matches.
func (l *Locator) Locator(css string) *Locator {
	return &Locator{s: l.s, parent: l, css: css}
}

// HasText keeps elements whose visible text contains text, ignoring case
// and collapsing whitespace.
func (l *Locator) HasText(text string) *Locator {
	want := strings.ToLower(normalizeSpace(text))
	return l.with(fmt.Sprintf("has-text=%q", text), func(els []*rod.Element) ([]*rod.Element, error) {
		return keep(els, func(el *rod.Element) (bool, error) {
			got, err := el.Text()
			if err != nil {
				return false, err
			}
			return strings.Contains(strings.ToLower(normalizeSpace(got)), want), nil
		})
	})
}

// WithAttr keeps elements whose attribute name equals value.
func (l *Locator) WithAttr(name, value string) *Locator {
	return l.with(fmt.Sprintf("[%s=%q]", name, value), func(els []*rod.Element) ([]*rod.Element, error) {
		return keep(els, func(el *rod.Element) (bool, error) {
			got, err := el.Attribute(name)
			if err != nil {
				return false, err
			}
			return got != nil && *got == value, nil
		})
	})
}

// WithClass keeps elements carrying class.
func (l *Locator) WithClass(class string) *Locator {
	return l.with("."+class, func(els []*rod.Element) ([]*rod.Element, error) {
		return keep(els, func(el *rod.Element) (bool, error) {
			classes, err := classList(el)
			if err != nil {
				return false, err
			}
			return slices.Contains(classes, class), nil
		})
	})
}

// Nth keeps only the i-th match, counting from zero.
func (l *Locator) Nth(i int) *Locator {
	return l.with(fmt.Sprintf("nth=%d", i), func(els []*rod.Element) ([]*rod.Element, error) {
		if i < 0 || i >= len(els) {
			return nil, nil
		}
		return els[i : i+1], nil
	})
}

// First is Nth(0).
func (l *Locator) First() *Locator {
	return l.Nth(0)
}

func (l *Locator) with(desc string, apply func([]*rod.Element) ([]*rod.Element, error)) *Locator {
	steps := make([]step, len(l.steps), len(l.steps)+1)
	copy(steps, l.steps)
	return &Locator{
		s:      l.s,
		parent: l.parent,
		css:    l.css,
		steps:  append(steps, step{desc: desc, apply: apply}),
	}
}

// String renders the locator chain, e.g. `.crypto-card >> nth=2 >> .ui.label`.
func (l *Locator) String() string {
	var parts []string
	if l.parent != nil {
		parts = append(parts, l.parent.String())
	}
	parts = append(parts, l.css)
	for _, st := range l.steps {
		parts = append(parts, st.desc)
	}
	return strings.Join(parts, " >> ")
}

// resolve queries the page once, without waiting.
func (l *Locator) resolve() ([]*rod.Element, error) {
	var els []*rod.Element
	if l.parent == nil {
		found, err := l.s.page.Elements(l.css)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", l.css, err)
		}
		els = found
	} else {
		parents, err := l.parent.resolve()
		if err != nil {
			return nil, err
		}
		for _, p := range parents {
			found, err := p.Elements(l.css)
			if err != nil {
				return nil, fmt.Errorf("query %s: %w", l.css, err)
			}
			els = append(els, found...)
		}
	}

	for _, st := range l.steps {
		var err error
		if els, err = st.apply(els); err != nil {
			return nil, fmt.Errorf("filter %s: %w", st.desc, err)
		}
	}
	return els, nil
}

// single resolves l and requires exactly one match.
func (l *Locator) single() (*rod.Element, error) {
	els, err := l.resolve()
	if err != nil {
		return nil, err
	}
	switch len(els) {
	case 0:
		return nil, fmt.Errorf("%s matched no elements", l)
	case 1:
		return els[0], nil
	default:
		return nil, fmt.Errorf("%s matched %d elements, want 1", l, len(els))
	}
}

// Count returns the number of matches right now.
func (l *Locator) Count() (int, error) {
	els, err := l.resolve()
	return len(els), err
}

// Text returns the normalized visible text of the single match right now.
func (l *Locator) Text() (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return normalizeSpace(text), nil
}

// Visible reports whether the single match is visible right now.
func (l *Locator) Visible() (bool, error) {
	el, err := l.single()
	if err != nil {
		return false, err
	}
	return el.Visible()
}

func keep(els []*rod.Element, pred func(*rod.Element) (bool, error)) ([]*rod.Element, error) {
	var out []*rod.Element
	for _, el := range els {
		ok, err := pred(el)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, el)
		}
	}
	return out, nil
}

func classList(el *rod.Element) ([]string, error) {
	attr, err := el.Attribute("class")
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, nil
	}
	return strings.Fields(*attr), nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
