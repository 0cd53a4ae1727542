package billing

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"450", 45000, false},
		{"450.00", 45000, false},
		{"450.5", 45050, false},
		{"0.07", 7, false},
		{".99", 99, false},
		{"1200", 120000, false},
		{"-12.34", -1234, false},
		{" 325.00 ", 32500, false},
		{"", 0, true},
		{".", 0, true},
		{"12.345", 0, true},
		{"12,50", 0, true},
		{"abc", 0, true},
		{"$450", 0, true},
		{"92233720368547758.08", 0, true},
		{"99999999999999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %d, expected error", tt.in, got)
				}
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("error should wrap ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{45000, "450.00"},
		{45050, "450.50"},
		{7, "0.07"},
		{0, "0.00"},
		{-1234, "-12.34"},
		{152500, "1525.00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmountGrouped(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{152500, "1,525.00"},
		{1425000, "14,250.00"},
		{45000, "450.00"},
	}
	for _, tt := range tests {
		if got := FormatAmountGrouped(tt.in); got != tt.want {
			t.Errorf("FormatAmountGrouped(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 45050, 999999999} {
		s := FormatAmount(cents)
		back, err := ParseAmount(s)
		if err != nil {
			t.Fatalf("round trip %d: %v", cents, err)
		}
		if back != cents {
			t.Errorf("round trip %d -> %q -> %d", cents, s, back)
		}
	}
}
