package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// OrderStoreService reads from the persistence collaborator. This engine never
// writes order rows itself; import happens elsewhere. The only write in the
// whole engine is the settlement status update in SettlementService.
type OrderStoreService struct {
	db *sql.DB
}

// NewOrderStoreService creates a new order store service
func NewOrderStoreService(db *sql.DB) *OrderStoreService {
	return &OrderStoreService{db: db}
}

// orderTables maps a platform to its persisted-orders table. Each platform
// keeps its own table because order IDs are only unique per platform.
var orderTables = map[models.Platform]string{
	models.PlatformHumanitix:  "orders_humanitix",
	models.PlatformEventbrite: "orders_eventbrite",
}

// ExistingOrderIDs returns the complete snapshot of persisted order IDs for a
// platform. The snapshot must be fetched before validation begins, not lazily,
// so duplicate classification stays deterministic regardless of row order.
func (s *OrderStoreService) ExistingOrderIDs(ctx context.Context, platform models.Platform) (map[string]struct{}, error) {
	table, ok := orderTables[platform]
	if !ok {
		return nil, fmt.Errorf("no persisted-order table for platform: %s", platform)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT source_id FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("fetch existing orders: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing orders: %w", err)
	}

	return ids, nil
}

// CostRecords returns the itemized cost lines recorded for an event,
// read-only inputs to the settlement calculator.
func (s *OrderStoreService) CostRecords(ctx context.Context, eventID string) ([]models.CostRecord, error) {
	query := `
		SELECT event_id, category, description, amount
		FROM event_costs
		WHERE event_id = $1
		ORDER BY category, description
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("fetch cost records: %w", err)
	}
	defer rows.Close()

	var out []models.CostRecord
	for rows.Next() {
		var c models.CostRecord
		if err := rows.Scan(&c.EventID, &c.Category, &c.Description, &c.Amount); err != nil {
			return nil, fmt.Errorf("scan cost record: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost records: %w", err)
	}

	return out, nil
}

// EventRevenue returns the recorded total revenue for an event, zero when the
// event has no revenue recorded yet.
func (s *OrderStoreService) EventRevenue(ctx context.Context, eventID string) (decimal.Decimal, error) {
	var revenue sql.NullString
	query := `SELECT total_revenue FROM events WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&revenue)
	if err == sql.ErrNoRows {
		return decimal.Zero, fmt.Errorf("event not found: %s", eventID)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch event revenue: %w", err)
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(revenue.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse event revenue: %w", err)
	}
	return d, nil
}
