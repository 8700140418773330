package util

import (
	"fmt"
	"time"
)

// max amount accepted by the API: 10 million units, in cents
const maxAmountCent = 10_000_000 * 100

// ValidateAmountCent checks an amount in cents (positive, below the cap).
func ValidateAmountCent(cent int64) error {
	if cent <= 0 {
		return fmt.Errorf("amount must be positive, got %d", cent)
	}
	if cent >= maxAmountCent {
		return fmt.Errorf("amount too large, got %d", cent)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string and returns the parsed date.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateName checks a display name (non-empty, bounded length).
func ValidateName(name string, maxLen int) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > maxLen {
		return fmt.Errorf("name too long, max %d characters", maxLen)
	}
	return nil
}
