package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chillz-id/gigpig-settlement/src/models"
	"github.com/chillz-id/gigpig-settlement/src/parser"
)

// ErrNilSnapshot is returned when validation is attempted without the
// persisted-order snapshot. Existing/new classification cannot be trusted
// without it, so the whole run must stop rather than produce a partial result.
var ErrNilSnapshot = errors.New("existing-order snapshot is required before validation")

// ValidationService performs structural validation of export batches.
// Per-record issues accumulate in the result; the service itself only errors
// on collaborator-level problems.
type ValidationService struct {
	logger zerolog.Logger
}

// NewValidationService creates a new validation service
func NewValidationService(logger zerolog.Logger) *ValidationService {
	return &ValidationService{logger: logger}
}

// ValidateOrders validates one batch of order records against the snapshot of
// already-persisted order IDs. Checks run per record, in order: required
// fields, in-batch duplicates, existing/new classification, date formats,
// amount formats. Issue lists preserve input row order. A record counts as
// valid iff it triggered zero errors; warnings never disqualify it.
//
// The first occurrence of a duplicated order ID stays valid; only the second
// and later occurrences are errors.
func (s *ValidationService) ValidateOrders(records []models.OrderRecord, existingIDs map[string]struct{}) (*models.OrderValidationResult, error) {
	if existingIDs == nil {
		return nil, ErrNilSnapshot
	}

	res := &models.OrderValidationResult{
		Total:         len(records),
		MissingFields: make(map[string]int),
	}

	seen := make(map[string]struct{}, len(records))
	for i := range records {
		rec := &records[i]
		hasError := false

		// Required field: Order ID
		if rec.OrderID == "" {
			res.MissingFields["Order ID"]++
			res.Errors = append(res.Errors, models.RowIssue{Row: rec.Row, Message: "Missing Order ID"})
			hasError = true
		} else {
			if _, dup := seen[rec.OrderID]; dup {
				res.Duplicates = append(res.Duplicates, models.DuplicateRef{OrderID: rec.OrderID, Row: rec.Row})
				res.Errors = append(res.Errors, models.RowIssue{
					Row:     rec.Row,
					Message: fmt.Sprintf("Duplicate Order ID %s", rec.OrderID),
				})
				hasError = true
			}
			seen[rec.OrderID] = struct{}{}

			if _, ok := existingIDs[rec.OrderID]; ok {
				res.ExistingOrders++
			} else {
				res.NewOrders++
			}
		}

		// Event ID is warning-only: the record imports but stays unlinked
		if rec.EventID == "" {
			res.MissingFields["Event ID"]++
			res.Warnings = append(res.Warnings, models.RowIssue{Row: rec.Row, Message: "Missing Event ID"})
		}

		if rec.Venue != "" {
			res.OrdersWithVenue++
		} else {
			res.MissingFields["Event location"]++
			res.Warnings = append(res.Warnings, models.RowIssue{Row: rec.Row, Message: "Missing Event location (venue)"})
		}

		if rec.BuyerEmail == "" {
			res.MissingFields["Buyer email"]++
			res.Warnings = append(res.Warnings, models.RowIssue{Row: rec.Row, Message: "Missing Buyer email"})
		}

		// Primary date: error. Secondary date: warning.
		if rec.OrderDate != "" && !parser.IsValidDate(rec.OrderDate) {
			res.InvalidDates = append(res.InvalidDates, models.DateIssue{
				OrderID: rec.OrderID, Field: "Order date", Value: rec.OrderDate, Row: rec.Row,
			})
			res.Errors = append(res.Errors, models.RowIssue{
				Row:     rec.Row,
				Message: fmt.Sprintf("Invalid Order date format: %s", rec.OrderDate),
			})
			hasError = true
		}
		if rec.EventStartDate != "" && !parser.IsValidDate(rec.EventStartDate) {
			res.InvalidDates = append(res.InvalidDates, models.DateIssue{
				OrderID: rec.OrderID, Field: "Event start date", Value: rec.EventStartDate, Row: rec.Row,
			})
			res.Warnings = append(res.Warnings, models.RowIssue{
				Row:     rec.Row,
				Message: fmt.Sprintf("Invalid Event start date format: %s", rec.EventStartDate),
			})
		}

		// Every present currency field must pass the strict check
		for _, af := range rec.AmountFields() {
			if af.Value != "" && !parser.IsValidAmount(af.Value) {
				res.InvalidAmounts = append(res.InvalidAmounts, models.AmountIssue{
					OrderID: rec.OrderID, Field: af.Name, Value: af.Value, Row: rec.Row,
				})
				res.Errors = append(res.Errors, models.RowIssue{
					Row:     rec.Row,
					Message: fmt.Sprintf("Invalid %s format: %s", af.Name, af.Value),
				})
				hasError = true
			}
		}

		// Net sales is the critical financial field; track its absence
		if rec.NetSales == "" {
			res.MissingFields["Net sales"]++
			res.Warnings = append(res.Warnings, models.RowIssue{Row: rec.Row, Message: "Missing Net sales"})
		}

		if !hasError {
			res.Valid++
		}
	}

	s.logger.Info().
		Int("total", res.Total).
		Int("valid", res.Valid).
		Int("existing", res.ExistingOrders).
		Int("new", res.NewOrders).
		Int("duplicates", len(res.Duplicates)).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Msg("validated order records")

	return res, nil
}

// ValidateSales validates a pre-aggregated sales export. There is no natural
// key at this granularity, so there is no duplicate or existing/new check;
// only the event name and numeric field formats are verified.
func (s *ValidationService) ValidateSales(records []models.SalesRecord) *models.SalesValidationResult {
	res := &models.SalesValidationResult{Total: len(records)}

	for i := range records {
		rec := &records[i]
		hasError := false

		if rec.EventName == "" {
			res.Warnings = append(res.Warnings, models.RowIssue{Row: rec.Row, Message: "Missing Event name"})
		}

		for _, af := range rec.AmountFields() {
			if af.Value != "" && !parser.IsValidAmount(af.Value) {
				res.Errors = append(res.Errors, models.RowIssue{
					Row:     rec.Row,
					Message: fmt.Sprintf("Invalid %s format: %s", af.Name, af.Value),
				})
				hasError = true
			}
		}

		if !hasError {
			res.Valid++
		}
	}

	s.logger.Info().
		Int("total", res.Total).
		Int("valid", res.Valid).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Msg("validated sales records")

	return res
}

// ValidRecords filters a batch down to the records that carry no errors,
// using the same duplicate policy as ValidateOrders. Used to feed the
// aggregator with exactly the records that counted toward Valid.
func (s *ValidationService) ValidRecords(records []models.OrderRecord) []models.OrderRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.OrderRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.OrderID == "" {
			continue
		}
		if _, dup := seen[rec.OrderID]; dup {
			continue
		}
		seen[rec.OrderID] = struct{}{}

		if rec.OrderDate != "" && !parser.IsValidDate(rec.OrderDate) {
			continue
		}
		ok := true
		for _, af := range rec.AmountFields() {
			if af.Value != "" && !parser.IsValidAmount(af.Value) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, *rec)
		}
	}
	return out
}
