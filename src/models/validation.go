package models

// RowIssue is one validation finding tied to a source row.
// Issue lists preserve input row order.
type RowIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// DuplicateRef records an order ID seen more than once within a batch.
// The row is the repeated occurrence, not the first.
type DuplicateRef struct {
	OrderID string `json:"order_id"`
	Row     int    `json:"row"`
}

// DateIssue records a non-empty date value that failed to parse
type DateIssue struct {
	OrderID string `json:"order_id"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Row     int    `json:"row"`
}

// AmountIssue records a currency field that failed strict format validation
type AmountIssue struct {
	OrderID string `json:"order_id"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Row     int    `json:"row"`
}

// OrderValidationResult is the outcome of validating one batch of order records.
// A record contributes to Valid iff it triggered zero errors; warnings never
// disqualify a record.
type OrderValidationResult struct {
	Total int `json:"total"`
	Valid int `json:"valid"`

	Errors   []RowIssue `json:"errors"`
	Warnings []RowIssue `json:"warnings"`

	Duplicates     []DuplicateRef `json:"duplicates"`
	InvalidDates   []DateIssue    `json:"invalid_dates"`
	InvalidAmounts []AmountIssue  `json:"invalid_amounts"`

	// Field name -> count of rows missing it
	MissingFields map[string]int `json:"missing_fields"`

	// Classification against the persisted-order snapshot
	ExistingOrders int `json:"existing_orders"`
	NewOrders      int `json:"new_orders"`

	// Rows that carried venue data
	OrdersWithVenue int `json:"orders_with_venue"`
}

// HasErrors returns true when any structural error was recorded
func (r *OrderValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// SalesValidationResult is the outcome of validating a pre-aggregated sales export
type SalesValidationResult struct {
	Total    int        `json:"total"`
	Valid    int        `json:"valid"`
	Errors   []RowIssue `json:"errors"`
	Warnings []RowIssue `json:"warnings"`
}

// HasErrors returns true when any structural error was recorded
func (r *SalesValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}
