package models

import (
	"github.com/shopspring/decimal"
)

// SettlementStatus represents the payout state of one event's settlement
type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "pending"    // No settlement action taken yet
	SettlementStatusProcessing SettlementStatus = "processing" // Payouts in flight
	SettlementStatusCompleted  SettlementStatus = "completed"  // All payouts done
)

// IsValid returns true for a recognized settlement status
func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusPending, SettlementStatusProcessing, SettlementStatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a transition to the target status is allowed.
// Transitions are user-triggered with no enforced ordering: any valid status is
// reachable from any other, including moving a completed settlement back to
// processing when a payout is reverted.
func (s SettlementStatus) CanTransitionTo(target SettlementStatus) bool {
	return s.IsValid() && target.IsValid()
}

// CostCategory classifies an itemized event cost
type CostCategory string

const (
	CostCategoryComedian  CostCategory = "comedian"  // Performer fees
	CostCategoryVenue     CostCategory = "venue"     // Room hire, staffing
	CostCategoryMarketing CostCategory = "marketing" // Ads, promo spend
)

// CostRecord is one itemized cost line for an event, read from the cost
// collaborators. Input-only; this engine never writes cost records.
type CostRecord struct {
	EventID     string          `json:"event_id" db:"event_id"`
	Category    CostCategory    `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
}

// SettlementBreakdown is the per-event cost/revenue split for payout purposes.
// TotalCosts and NetProfit are always derived from the components, never stored
// independently.
type SettlementBreakdown struct {
	EventKey string `json:"event_key"`

	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	ComedianFees   decimal.Decimal `json:"comedian_fees"`
	VenueCosts     decimal.Decimal `json:"venue_costs"`
	MarketingCosts decimal.Decimal `json:"marketing_costs"`

	TotalCosts      decimal.Decimal `json:"total_costs"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	ProfitMarginPct decimal.Decimal `json:"profit_margin_pct"`

	Status SettlementStatus `json:"settlement_status"`
}

// NewSettlementBreakdown derives a settlement from revenue and the three cost
// components. ProfitMarginPct is exactly zero when revenue is zero.
func NewSettlementBreakdown(eventKey string, revenue, comedianFees, venueCosts, marketingCosts decimal.Decimal) *SettlementBreakdown {
	totalCosts := comedianFees.Add(venueCosts).Add(marketingCosts)
	netProfit := revenue.Sub(totalCosts)

	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = netProfit.Div(revenue).Mul(decimal.NewFromInt(100))
	}

	return &SettlementBreakdown{
		EventKey:        eventKey,
		TotalRevenue:    revenue,
		ComedianFees:    comedianFees,
		VenueCosts:      venueCosts,
		MarketingCosts:  marketingCosts,
		TotalCosts:      totalCosts,
		NetProfit:       netProfit,
		ProfitMarginPct: margin,
		Status:          SettlementStatusPending,
	}
}
