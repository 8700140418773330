package util

import (
	"testing"
)

func TestValidateAmountCent_Positive(t *testing.T) {
	testCases := []int64{1, 100, 10050, 999999999}

	for _, cent := range testCases {
		err := ValidateAmountCent(cent)
		if err != nil {
			t.Errorf("ValidateAmountCent(%d) error = %v, want nil", cent, err)
		}
	}
}

func TestValidateAmountCent_ZeroAndNegative(t *testing.T) {
	testCases := []int64{0, -1, -10000}

	for _, cent := range testCases {
		err := ValidateAmountCent(cent)
		if err == nil {
			t.Errorf("ValidateAmountCent(%d) error = nil, want error", cent)
		}
	}
}

func TestValidateAmountCent_TooLarge(t *testing.T) {
	err := ValidateAmountCent(10_000_000 * 100)

	if err == nil {
		t.Error("ValidateAmountCent(cap) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-13-01",
		"not a date",
	}

	for _, date := range testCases {
		if _, err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Checking", 64); err != nil {
		t.Errorf("ValidateName(Checking) error = %v, want nil", err)
	}
	if err := ValidateName("", 64); err == nil {
		t.Error("ValidateName(empty) error = nil, want error")
	}
	if err := ValidateName("abcdef", 5); err == nil {
		t.Error("ValidateName(too long) error = nil, want error")
	}
}
