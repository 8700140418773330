package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Amounts travel as decimal strings ("123.45") and live as int64 cents.

// ParseAmountCent converts a decimal amount string to cents.
func ParseAmountCent(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if f < 0 {
		return int64(f*100 - 0.5), nil
	}
	return int64(f*100 + 0.5), nil
}

// FormatCent renders cents as a decimal string with two places.
func FormatCent(cent int64) string {
	return strconv.FormatFloat(float64(cent)/100.0, 'f', 2, 64)
}
