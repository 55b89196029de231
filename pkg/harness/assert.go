package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-rod/rod"
)

// Every assertion polls the live page until its condition holds or the
// session timeout elapses. Single-element assertions require the locator
// to match exactly one element; a locator that matches several fails
// rather than picking one.

// AssertVisible waits until the single match is visible.
func (l *Locator) AssertVisible() error {
	return expectPoll(l.s, "AssertVisible", l.String(), true, l.Visible, func(v bool) bool { return v })
}

// AssertHidden waits until the locator matches nothing or only invisible
// elements.
func (l *Locator) AssertHidden() error {
	probe := func() (bool, error) {
		els, err := l.resolve()
		if err != nil {
			return false, err
		}
		for _, el := range els {
			v, err := el.Visible()
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	}
	return expectPoll(l.s, "AssertHidden", l.String(), false, probe, func(v bool) bool { return !v })
}

// AssertText waits until the single match's text contains substr.
func (l *Locator) AssertText(substr string) error {
	want := normalizeSpace(substr)
	return expectPoll(l.s, "AssertText", l.String(), substr, l.Text, func(got string) bool {
		return strings.Contains(got, want)
	})
}

// AssertTextEquals waits until the single match's text equals want after
// whitespace normalization.
func (l *Locator) AssertTextEquals(want string) error {
	want = normalizeSpace(want)
	return expectPoll(l.s, "AssertTextEquals", l.String(), want, l.Text, func(got string) bool {
		return got == want
	})
}

// AssertCount waits until the locator matches exactly n elements.
func (l *Locator) AssertCount(n int) error {
	return expectPoll(l.s, "AssertCount", l.String(), n, l.Count, func(got int) bool { return got == n })
}

// AssertCountAtLeast waits until the locator matches n or more elements.
func (l *Locator) AssertCountAtLeast(n int) error {
	return expectPoll(l.s, "AssertCountAtLeast", l.String(), fmt.Sprintf(">= %d", n), l.Count, func(got int) bool {
		return got >= n
	})
}

// AssertClass waits until the single match carries class.
func (l *Locator) AssertClass(class string) error {
	return expectPoll(l.s, "AssertClass", l.String(), class, l.classAttr, func(got string) bool {
		return slices.Contains(strings.Fields(got), class)
	})
}

// AssertNoClass waits until the single match no longer carries class.
func (l *Locator) AssertNoClass(class string) error {
	return expectPoll(l.s, "AssertNoClass", l.String(), "not "+class, l.classAttr, func(got string) bool {
		return !slices.Contains(strings.Fields(got), class)
	})
}

// AssertAttribute waits until attribute name of the single match equals value.
func (l *Locator) AssertAttribute(name, value string) error {
	probe := func() (string, error) {
		el, err := l.single()
		if err != nil {
			return "", err
		}
		got, err := el.Attribute(name)
		if err != nil {
			return "", err
		}
		if got == nil {
			return "", fmt.Errorf("attribute %s not set", name)
		}
		return *got, nil
	}
	return expectPoll(l.s, "AssertAttribute", l.String()+"@"+name, value, probe, func(got string) bool {
		return got == value
	})
}

// AssertValue waits until the single match's value property equals want.
func (l *Locator) AssertValue(want string) error {
	return expectPoll(l.s, "AssertValue", l.String(), want, l.Value, func(got string) bool {
		return got == want
	})
}

// AssertEditable waits until the single match accepts text input.
func (l *Locator) AssertEditable() error {
	probe := func() (bool, error) {
		el, err := l.single()
		if err != nil {
			return false, err
		}
		return editable(el)
	}
	return expectPoll(l.s, "AssertEditable", l.String(), true, probe, func(v bool) bool { return v })
}

// AssertTagName waits until the single match is a tag element, compared
// case-insensitively.
func (l *Locator) AssertTagName(tag string) error {
	probe := func() (string, error) {
		el, err := l.single()
		if err != nil {
			return "", err
		}
		res, err := el.Eval(`function() { return this.tagName }`)
		if err != nil {
			return "", err
		}
		return res.Value.Str(), nil
	}
	return expectPoll(l.s, "AssertTagName", l.String(), strings.ToUpper(tag), probe, func(got string) bool {
		return strings.EqualFold(got, tag)
	})
}

// Value returns the value property of the single match right now.
func (l *Locator) Value() (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	v, err := el.Property("value")
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

func (l *Locator) classAttr() (string, error) {
	el, err := l.single()
	if err != nil {
		return "", err
	}
	classes, err := classList(el)
	if err != nil {
		return "", err
	}
	return strings.Join(classes, " "), nil
}

func editable(el *rod.Element) (bool, error) {
	res, err := el.Eval(`function() {
		if (this.isContentEditable) return true;
		if (!['INPUT', 'TEXTAREA', 'SELECT'].includes(this.tagName)) return false;
		return !this.disabled && !this.readOnly;
	}`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}
