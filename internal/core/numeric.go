package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a raw user-entered numeric string. Grouping commas are
// stripped first; anything that still fails to parse contributes zero, so a
// half-typed field never breaks a running form.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// roundWhole rounds to the nearest whole unit, half away from zero.
func roundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FormatAmount renders a value with thousands grouping for display,
// e.g. -21180.5 -> "-21,180.5".
func FormatAmount(d decimal.Decimal) string {
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)
	return b.String()
}
