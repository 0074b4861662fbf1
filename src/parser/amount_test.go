package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"currency formatted", "$1,234.56", "1234.56"},
		{"plain decimal", "90.00", "90"},
		{"no decimals", "$100", "100"},
		{"empty string", "", "0"},
		{"whitespace only", "   ", "0"},
		{"unparseable", "abc", "0"},
		{"negative refund", "-$25.50", "-25.5"},
		{"thousands", "$12,345,678.90", "12345678.9"},
		{"leading spaces", "  $50.25", "50.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestIsValidAmount(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"$1,234.56", true},
		{"90.00", true},
		{"", true}, // optional fields are valid when empty
		{"abc", false},
		{"$1.2.3", false},
		{"-$10.00", true},
		{"12,34", true}, // comma stripped leaves 1234, still parseable
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidAmount(tt.input); got != tt.want {
				t.Errorf("IsValidAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
