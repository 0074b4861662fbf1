package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// Export column names are matched verbatim against the header row so existing
// platform export files keep working. Fields are referenced by header name,
// never by position.
const (
	colOrderID        = "Order ID"
	colEventID        = "Event ID"
	colEventName      = "Event name"
	colOrderDate      = "Order date"
	colEventStartDate = "Event start date"
	colEventLocation  = "Event location"
	colBuyerEmail     = "Buyer email"
	colGrossSales     = "Gross sales"
	colNetSales       = "Net sales"
	colServiceFee     = "Eventbrite service fee"
	colProcessingFee  = "Eventbrite payment processing fee"
	colTax            = "Tax"
	colTicketRevenue  = "Ticket revenue"
	colTicketsSold    = "Tickets sold"
)

// ReadOrdersCSV reads a per-order platform export. Only the Order ID column is
// required in the header; everything else is optional so partial exports still
// load. Malformed field values are not rejected here — structural validation is
// the validator's job, the reader only fails on unreadable files or a missing
// required header.
func ReadOrdersCSV(path string, platform models.Platform) ([]models.OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := toIndex(headers)
	if _, ok := col[colOrderID]; !ok {
		return nil, fmt.Errorf("missing column: %s", colOrderID)
	}

	var out []models.OrderRecord
	row := 1 // header is row 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row++
		out = append(out, models.OrderRecord{
			Row:            row,
			OrderID:        field(rec, col, colOrderID),
			EventID:        field(rec, col, colEventID),
			EventName:      field(rec, col, colEventName),
			Platform:       platform,
			OrderDate:      field(rec, col, colOrderDate),
			EventStartDate: field(rec, col, colEventStartDate),
			Venue:          field(rec, col, colEventLocation),
			BuyerEmail:     field(rec, col, colBuyerEmail),
			GrossSales:     field(rec, col, colGrossSales),
			NetSales:       field(rec, col, colNetSales),
			ServiceFee:     field(rec, col, colServiceFee),
			ProcessingFee:  field(rec, col, colProcessingFee),
			Tax:            field(rec, col, colTax),
			TicketRevenue:  field(rec, col, colTicketRevenue),
		})
	}
	return out, nil
}

// ReadSalesCSV reads a pre-aggregated per-event sales export. This granularity
// carries event names only, no IDs.
func ReadSalesCSV(path string) ([]models.SalesRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := toIndex(headers)
	if _, ok := col[colEventName]; !ok {
		return nil, fmt.Errorf("missing column: %s", colEventName)
	}

	var out []models.SalesRecord
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row++
		out = append(out, models.SalesRecord{
			Row:         row,
			EventName:   field(rec, col, colEventName),
			GrossSales:  field(rec, col, colGrossSales),
			NetSales:    field(rec, col, colNetSales),
			TicketsSold: field(rec, col, colTicketsSold),
		})
	}
	return out, nil
}

// IsValidDate reports whether a date string parses in one of the formats the
// platform exports use. Empty input is not a valid date; callers decide
// whether an empty field is acceptable.
func IsValidDate(s string) bool {
	_, err := ParseDateFlexible(s)
	return err == nil
}

// ParseDateFlexible parses the date formats seen across platform exports:
// RFC3339 timestamps, "2006-01-02 15:04:05", plain dates, and the US-style
// "1/2/2006" the older Eventbrite exports carry.
func ParseDateFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"1/2/2006 15:04",
		"1/2/2006",
	}
	var lastErr error
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("date parse failed: %w", lastErr)
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
