package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// SettlementService derives per-event cost/revenue splits for payout purposes
// and tracks settlement status. Computation is pure aggregation; validation is
// the validator's job upstream.
type SettlementService struct {
	db     *sql.DB
	store  *OrderStoreService
	logger zerolog.Logger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(db *sql.DB, logger zerolog.Logger) *SettlementService {
	return &SettlementService{
		db:     db,
		store:  NewOrderStoreService(db),
		logger: logger,
	}
}

// ComputeSettlement folds itemized cost records into a settlement breakdown.
// Total costs are always derived from the three components, never accepted as
// an input, so a stale stored total cannot drift from its parts. Cost lines
// with an unrecognized category are ignored.
func ComputeSettlement(eventKey string, totalRevenue decimal.Decimal, costs []models.CostRecord) *models.SettlementBreakdown {
	comedianFees := decimal.Zero
	venueCosts := decimal.Zero
	marketingCosts := decimal.Zero

	for _, c := range costs {
		switch c.Category {
		case models.CostCategoryComedian:
			comedianFees = comedianFees.Add(c.Amount)
		case models.CostCategoryVenue:
			venueCosts = venueCosts.Add(c.Amount)
		case models.CostCategoryMarketing:
			marketingCosts = marketingCosts.Add(c.Amount)
		}
	}

	return models.NewSettlementBreakdown(eventKey, totalRevenue, comedianFees, venueCosts, marketingCosts)
}

// SettleEvent loads the recorded revenue and cost lines for an event and
// computes its settlement breakdown.
func (s *SettlementService) SettleEvent(ctx context.Context, eventID string) (*models.SettlementBreakdown, error) {
	revenue, err := s.store.EventRevenue(ctx, eventID)
	if err != nil {
		return nil, err
	}

	costs, err := s.store.CostRecords(ctx, eventID)
	if err != nil {
		return nil, err
	}

	breakdown := ComputeSettlement(eventID, revenue, costs)

	status, err := s.currentStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}
	breakdown.Status = status

	s.logger.Info().
		Str("event_id", eventID).
		Str("net_profit", breakdown.NetProfit.StringFixed(2)).
		Str("status", string(breakdown.Status)).
		Msg("computed settlement")

	return breakdown, nil
}

// UpdateStatus transitions the settlement status of an event. Transitions are
// user-triggered; any valid status is reachable from any other, so the only
// rejections are unknown status values and missing events.
func (s *SettlementService) UpdateStatus(ctx context.Context, eventID string, status models.SettlementStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid settlement status: %s", status)
	}

	query := `UPDATE events SET settlement_status = $1 WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, eventID)
	if err != nil {
		return fmt.Errorf("update settlement status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("status", string(status)).
		Msg("updated settlement status")

	return nil
}

func (s *SettlementService) currentStatus(ctx context.Context, eventID string) (models.SettlementStatus, error) {
	var status sql.NullString
	query := `SELECT settlement_status FROM events WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("event not found: %s", eventID)
	}
	if err != nil {
		return "", fmt.Errorf("fetch settlement status: %w", err)
	}
	if !status.Valid || status.String == "" {
		return models.SettlementStatusPending, nil
	}
	return models.SettlementStatus(status.String), nil
}
