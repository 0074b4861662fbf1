package models

import (
	"github.com/shopspring/decimal"
)

// PlatformTotals holds the per-platform slice of an event's totals
type PlatformTotals struct {
	OrderCount int             `json:"order_count"`
	Gross      decimal.Decimal `json:"gross"`
	Net        decimal.Decimal `json:"net"`
}

// EventFinancialSummary is the aggregated financial view of one event,
// independent of source granularity. Built once per aggregation pass and
// immutable afterwards.
type EventFinancialSummary struct {
	EventKey   string `json:"event_key"`
	EventName  string `json:"event_name"`
	OrderCount int    `json:"order_count"`

	TotalGross decimal.Decimal `json:"total_gross"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalFees  decimal.Decimal `json:"total_fees"`
	TotalTax   decimal.Decimal `json:"total_tax"`

	PlatformBreakdown map[string]PlatformTotals `json:"platform_breakdown"`
}

// NewEventFinancialSummary returns an empty summary for the given key
func NewEventFinancialSummary(key, name string) *EventFinancialSummary {
	return &EventFinancialSummary{
		EventKey:          key,
		EventName:         name,
		PlatformBreakdown: make(map[string]PlatformTotals),
	}
}

// Discrepancy is one detected mismatch between two independently computed
// totals for the same event. Variance is measured against the sales
// (pre-aggregated) side.
type Discrepancy struct {
	EventKey    string          `json:"event_key"`
	Field       string          `json:"field"` // "Gross Sales" or "Net Sales"
	SalesValue  decimal.Decimal `json:"sales_value"`
	OrdersValue decimal.Decimal `json:"orders_value"`
	Difference  decimal.Decimal `json:"difference"`
	VariancePct decimal.Decimal `json:"variance_pct"`
}
