package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount normalizes a currency-formatted export string into a decimal.
// It strips "$" and "," and returns zero for empty or unparseable input; it is
// always lenient and never the error-reporting path. Callers that require a
// field to be numeric must check IsValidAmount first. Negative values parse
// normally (refunds).
//
// Two-decimal rounding is deliberately not applied here; rounding happens only
// at aggregation and report boundaries so it cannot compound across large sums.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := cleanAmount(raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsValidAmount is the strict companion to ParseAmount. Empty input is valid
// (optional fields); non-empty input must parse as a decimal after stripping
// currency formatting.
func IsValidAmount(raw string) bool {
	cleaned := cleanAmount(raw)
	if cleaned == "" {
		return true
	}
	_, err := decimal.NewFromString(cleaned)
	return err == nil
}

func cleanAmount(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}
