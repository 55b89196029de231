package fixture

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders d as "$21,625.00" with the given number of decimals.
func FormatUSD(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if d.IsNegative() && !d.Round(places).IsZero() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a 24h change as "+2.50%" or "-0.80%".
func FormatPercent(d decimal.Decimal) string {
	s := d.StringFixed(2) + "%"
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}
