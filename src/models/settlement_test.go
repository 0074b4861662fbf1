package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlementStatusTransitions(t *testing.T) {
	valid := []SettlementStatus{
		SettlementStatusPending,
		SettlementStatusProcessing,
		SettlementStatusCompleted,
	}

	// Transitions are user-triggered with no enforced ordering: every valid
	// status must be reachable from every other, including itself.
	for _, from := range valid {
		for _, to := range valid {
			if !from.CanTransitionTo(to) {
				t.Errorf("expected %s -> %s to be allowed", from, to)
			}
		}
	}

	if SettlementStatusPending.CanTransitionTo("refunded") {
		t.Error("transition to unknown status must be rejected")
	}
	if SettlementStatus("bogus").CanTransitionTo(SettlementStatusPending) {
		t.Error("transition from unknown status must be rejected")
	}
}

func TestNewSettlementBreakdown(t *testing.T) {
	b := NewSettlementBreakdown(
		"EV-1",
		decimal.NewFromFloat(1000.00),
		decimal.NewFromFloat(400.00),
		decimal.NewFromFloat(250.00),
		decimal.NewFromFloat(100.00),
	)

	if !b.TotalCosts.Equal(decimal.NewFromFloat(750.00)) {
		t.Errorf("TotalCosts got=%s want=750", b.TotalCosts)
	}
	if !b.NetProfit.Equal(decimal.NewFromFloat(250.00)) {
		t.Errorf("NetProfit got=%s want=250", b.NetProfit)
	}
	if !b.ProfitMarginPct.Equal(decimal.NewFromFloat(25)) {
		t.Errorf("ProfitMarginPct got=%s want=25", b.ProfitMarginPct)
	}
	if b.Status != SettlementStatusPending {
		t.Errorf("Status got=%s want=%s", b.Status, SettlementStatusPending)
	}
}

func TestNewSettlementBreakdown_ZeroRevenue(t *testing.T) {
	b := NewSettlementBreakdown("EV-2", decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

	if !b.NetProfit.IsZero() {
		t.Errorf("NetProfit got=%s want=0", b.NetProfit)
	}
	// Margin must be exactly zero on zero revenue, never a division error
	if !b.ProfitMarginPct.IsZero() {
		t.Errorf("ProfitMarginPct got=%s want=0", b.ProfitMarginPct)
	}
}

func TestNewSettlementBreakdown_LossMakingEvent(t *testing.T) {
	b := NewSettlementBreakdown(
		"EV-3",
		decimal.NewFromFloat(200.00),
		decimal.NewFromFloat(300.00),
		decimal.NewFromFloat(50.00),
		decimal.Zero,
	)

	if !b.NetProfit.Equal(decimal.NewFromFloat(-150.00)) {
		t.Errorf("NetProfit got=%s want=-150", b.NetProfit)
	}
	if !b.ProfitMarginPct.Equal(decimal.NewFromFloat(-75)) {
		t.Errorf("ProfitMarginPct got=%s want=-75", b.ProfitMarginPct)
	}
}
