package services

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// DefaultTolerancePct is the variance threshold below which two differing
// totals are treated as rounding/aggregation noise.
var DefaultTolerancePct = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// ReconciliationService compares independently-computed per-event totals from
// two report granularities and flags variances beyond a tolerance threshold.
type ReconciliationService struct {
	logger zerolog.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(logger zerolog.Logger) *ReconciliationService {
	return &ReconciliationService{logger: logger}
}

// Reconcile matches sales-side summaries against order-side summaries by
// event name equality and compares gross and net totals independently, so a
// single event can yield zero, one, or two discrepancies. A discrepancy is
// emitted only when the variance strictly exceeds tolerancePct. Events present
// on only one side are skipped: the sales side may aggregate several instances
// of an event under one name, so an absent match is a known limitation rather
// than an error, and the report wording says so.
//
// Variance is measured relative to the sales side, |sales-orders|/sales*100,
// and is zero when the sales value is not positive.
func (s *ReconciliationService) Reconcile(orderSummaries, salesSummaries map[string]*models.EventFinancialSummary, tolerancePct decimal.Decimal) []models.Discrepancy {
	byName := make(map[string]*models.EventFinancialSummary, len(orderSummaries))
	orderKeys := sortedKeys(orderSummaries)
	for _, k := range orderKeys {
		sum := orderSummaries[k]
		if sum.EventName == "" {
			continue
		}
		// First key in sorted order wins, keeping matching deterministic
		if _, ok := byName[sum.EventName]; !ok {
			byName[sum.EventName] = sum
		}
	}

	var out []models.Discrepancy
	for _, name := range sortedKeys(salesSummaries) {
		sales := salesSummaries[name]
		orders, ok := byName[name]
		if !ok {
			continue
		}

		if d, found := compareTotals(name, "Gross Sales", sales.TotalGross, orders.TotalGross, tolerancePct); found {
			out = append(out, d)
		}
		if d, found := compareTotals(name, "Net Sales", sales.TotalNet, orders.TotalNet, tolerancePct); found {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EventKey != out[j].EventKey {
			return out[i].EventKey < out[j].EventKey
		}
		return out[i].Field < out[j].Field
	})

	s.logger.Info().
		Int("events_compared", len(byName)).
		Int("discrepancies", len(out)).
		Msg("cross-validated order and sales totals")

	return out
}

func compareTotals(eventKey, field string, salesValue, ordersValue, tolerancePct decimal.Decimal) (models.Discrepancy, bool) {
	diff := salesValue.Sub(ordersValue).Abs()

	variance := decimal.Zero
	if salesValue.IsPositive() {
		variance = diff.Div(salesValue).Mul(hundred)
	}

	if !variance.GreaterThan(tolerancePct) {
		return models.Discrepancy{}, false
	}

	return models.Discrepancy{
		EventKey:    eventKey,
		Field:       field,
		SalesValue:  salesValue.Round(2),
		OrdersValue: ordersValue.Round(2),
		Difference:  diff.Round(2),
		VariancePct: variance.Round(2),
	}, true
}

func sortedKeys(m map[string]*models.EventFinancialSummary) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
