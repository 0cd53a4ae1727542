// Package billing contains the invoice derived-state logic: exact-cents
// aggregation, status filtering, amount parsing/formatting and the CSV
// export payload. Like package schedule it is pure and store-agnostic.
package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount marks a currency input that does not parse to cents.
var ErrInvalidAmount = errors.New("invalid amount")

var grouped = message.NewPrinter(language.English)

// ParseAmount converts a decimal currency string ("450", "450.5", "450.00")
// into integer cents. More than two fraction digits are rejected rather
// than rounded.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidAmount, "empty")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	if len(frac) > 2 {
		return 0, errors.Wrapf(ErrInvalidAmount, "%q: too many fraction digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	var cents int64
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, errors.Wrapf(ErrInvalidAmount, "%q", s)
			}
			if cents > (math.MaxInt64-int64(r-'0'))/10 {
				return 0, errors.Wrapf(ErrInvalidAmount, "%q: amount too large", s)
			}
			cents = cents*10 + int64(r-'0')
		}
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}

// FormatAmount renders cents as a plain two-decimal string ("45000" ->
// "450.00").
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatAmountGrouped renders cents with thousands separators for display
// ("1425000" -> "14,250.00").
func FormatAmountGrouped(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return grouped.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
