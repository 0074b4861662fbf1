package services

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
	"github.com/chillz-id/gigpig-settlement/src/parser"
)

// AggregationService folds validated order records into per-event financial
// summaries. A single hash-map pass; records need not be sorted by event.
type AggregationService struct {
	logger zerolog.Logger
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(logger zerolog.Logger) *AggregationService {
	return &AggregationService{logger: logger}
}

// Aggregate groups valid records by event key (event ID preferred, event name
// as fallback) and sums the financial fields. Records with neither an event ID
// nor an event name cannot be grouped and are skipped; the validator has
// already flagged them. The platform breakdown is keyed by the record's
// platform, "unknown" when absent.
func (s *AggregationService) Aggregate(validRecords []models.OrderRecord) map[string]*models.EventFinancialSummary {
	summaries := make(map[string]*models.EventFinancialSummary)

	for i := range validRecords {
		rec := &validRecords[i]
		key := rec.EventKey()
		if key == "" {
			continue
		}

		sum, ok := summaries[key]
		if !ok {
			sum = models.NewEventFinancialSummary(key, rec.EventName)
			summaries[key] = sum
		}

		gross := parser.ParseAmount(rec.GrossSales)
		net := parser.ParseAmount(rec.NetSales)
		fees := parser.ParseAmount(rec.ServiceFee).Add(parser.ParseAmount(rec.ProcessingFee))
		tax := parser.ParseAmount(rec.Tax)

		sum.OrderCount++
		sum.TotalGross = sum.TotalGross.Add(gross)
		sum.TotalNet = sum.TotalNet.Add(net)
		sum.TotalFees = sum.TotalFees.Add(fees)
		sum.TotalTax = sum.TotalTax.Add(tax)

		pk := rec.PlatformKey()
		pt := sum.PlatformBreakdown[pk]
		pt.OrderCount++
		pt.Gross = pt.Gross.Add(gross)
		pt.Net = pt.Net.Add(net)
		sum.PlatformBreakdown[pk] = pt
	}

	s.logger.Info().
		Int("records", len(validRecords)).
		Int("events", len(summaries)).
		Msg("aggregated order records")

	return summaries
}

// AggregateSales builds per-event summaries from a pre-aggregated sales
// export. Rows here are already one-per-event, keyed by name only; rows
// sharing a name (multiple instances of the same show) are summed together.
func (s *AggregationService) AggregateSales(records []models.SalesRecord) map[string]*models.EventFinancialSummary {
	summaries := make(map[string]*models.EventFinancialSummary)

	for i := range records {
		rec := &records[i]
		if rec.EventName == "" {
			continue
		}

		sum, ok := summaries[rec.EventName]
		if !ok {
			sum = models.NewEventFinancialSummary(rec.EventName, rec.EventName)
			summaries[rec.EventName] = sum
		}

		sum.TotalGross = sum.TotalGross.Add(parser.ParseAmount(rec.GrossSales))
		sum.TotalNet = sum.TotalNet.Add(parser.ParseAmount(rec.NetSales))

		tickets := parser.ParseAmount(rec.TicketsSold)
		sum.OrderCount += int(tickets.IntPart())
	}

	return summaries
}

// TotalNet sums the net revenue across a set of summaries, rounded to cents.
// Used as the revenue input to settlement when no persisted revenue exists.
func TotalNet(summaries map[string]*models.EventFinancialSummary) decimal.Decimal {
	total := decimal.Zero
	for _, sum := range summaries {
		total = total.Add(sum.TotalNet)
	}
	return total.Round(2)
}
