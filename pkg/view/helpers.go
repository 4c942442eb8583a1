package view

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price with thousands separators and at most two
// decimals, e.g. 1200 -> "1,200", 99.5 -> "99.5".
func FormatPrice(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// EnabledLabel is the status column text.
func EnabledLabel(on bool) string {
	if on {
		return "Enabled"
	}
	return "Disabled"
}
