package models

// Platform identifies the ticketing platform an order record was exported from
type Platform string

const (
	PlatformHumanitix  Platform = "humanitix"  // Humanitix API exports
	PlatformEventbrite Platform = "eventbrite" // Eventbrite CSV exports
	PlatformUnknown    Platform = "unknown"    // Source did not carry a platform marker
)

// IsValid returns true for a recognized platform value
func (p Platform) IsValid() bool {
	switch p {
	case PlatformHumanitix, PlatformEventbrite, PlatformUnknown:
		return true
	default:
		return false
	}
}

// OrderRecord represents one ticket purchase transaction as exported by a platform.
// Amount and date fields keep the raw export strings; lenient parsing happens at the
// aggregation boundary and strict format checks happen in the validator, so a bad
// value can be reported with the exact text the export carried.
type OrderRecord struct {
	Row       int      `json:"row"` // 1-based source row, header counted
	OrderID   string   `json:"order_id"`
	EventID   string   `json:"event_id"`
	EventName string   `json:"event_name"`
	Platform  Platform `json:"platform"`

	// Dates (raw export strings, empty when absent)
	OrderDate      string `json:"order_date"`
	EventStartDate string `json:"event_start_date"`

	// Buyer and venue details
	BuyerEmail string `json:"buyer_email,omitempty"`
	Venue      string `json:"venue,omitempty"`

	// Currency fields (raw export strings, empty when absent)
	GrossSales    string `json:"gross_sales"`
	NetSales      string `json:"net_sales"`
	ServiceFee    string `json:"service_fee"`
	ProcessingFee string `json:"processing_fee"`
	Tax           string `json:"tax"`
	TicketRevenue string `json:"ticket_revenue"`
}

// AmountField pairs an export column name with the raw value found on a row
type AmountField struct {
	Name  string
	Value string
}

// AmountFields returns every currency column of the record in export order,
// keyed by the exact export header name. Used by the validator to check each
// present amount field.
func (r *OrderRecord) AmountFields() []AmountField {
	return []AmountField{
		{Name: "Gross sales", Value: r.GrossSales},
		{Name: "Net sales", Value: r.NetSales},
		{Name: "Eventbrite service fee", Value: r.ServiceFee},
		{Name: "Eventbrite payment processing fee", Value: r.ProcessingFee},
		{Name: "Tax", Value: r.Tax},
		{Name: "Ticket revenue", Value: r.TicketRevenue},
	}
}

// EventKey returns the grouping identifier for aggregation.
// Event ID is preferred; exports that only carry names fall back to the name.
func (r *OrderRecord) EventKey() string {
	if r.EventID != "" {
		return r.EventID
	}
	return r.EventName
}

// PlatformKey returns the breakdown key for the record's platform
func (r *OrderRecord) PlatformKey() string {
	if r.Platform == "" {
		return string(PlatformUnknown)
	}
	return string(r.Platform)
}

// SalesRecord represents one row of a pre-aggregated per-event sales export.
// This granularity carries no event ID and no order IDs, only event names.
type SalesRecord struct {
	Row         int    `json:"row"`
	EventName   string `json:"event_name"`
	GrossSales  string `json:"gross_sales"`
	NetSales    string `json:"net_sales"`
	TicketsSold string `json:"tickets_sold"`
}

// AmountFields returns the numeric columns of a sales row by export header name
func (r *SalesRecord) AmountFields() []AmountField {
	return []AmountField{
		{Name: "Gross sales", Value: r.GrossSales},
		{Name: "Net sales", Value: r.NetSales},
		{Name: "Tickets sold", Value: r.TicketsSold},
	}
}
