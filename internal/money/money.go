// Package money handles monetary amounts as integer cents.
// Amounts are computed in the smallest currency unit and formatted
// for display only at the edges.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromFloat converts a currency-unit amount (as it appears on the wire)
// to cents, rounding half away from zero.
func FromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToFloat converts cents back to currency units for wire payloads.
func ToFloat(cents int64) float64 {
	return float64(cents) / 100
}

// Parse converts a decimal string like "12.50" or "12" to cents.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse amount: empty string")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("parse amount %q: negative", s)
	}
	return FromFloat(f), nil
}

// Format renders cents as a display string, e.g. 75050 -> "$750.50".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
