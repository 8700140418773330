package util

import "testing"

func TestParseAmountCent(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0.01", 1},
		{"1", 100},
		{"123.45", 12345},
		{"100.5", 10050},
		{" 7.00 ", 700},
		{"-40.25", -4025},
	}

	for _, tc := range cases {
		got, err := ParseAmountCent(tc.in)
		if err != nil {
			t.Errorf("ParseAmountCent(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmountCent(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountCent_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12,34", "1.2.3"} {
		if _, err := ParseAmountCent(in); err == nil {
			t.Errorf("ParseAmountCent(%q) error = nil, want error", in)
		}
	}
}

func TestFormatCent(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{12345, "123.45"},
		{-4025, "-40.25"},
	}

	for _, tc := range cases {
		if got := FormatCent(tc.in); got != tc.want {
			t.Errorf("FormatCent(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "123.45", "9999.99"} {
		cent, err := ParseAmountCent(s)
		if err != nil {
			t.Fatalf("ParseAmountCent(%q): %v", s, err)
		}
		if got := FormatCent(cent); got != s {
			t.Errorf("round trip %q -> %d -> %q", s, cent, got)
		}
	}
}
