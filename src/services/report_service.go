package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

// Console lists are capped for readability; the full lists stay in the
// structured report for machine consumption.
const (
	maxErrorsShown        = 10
	maxDiscrepanciesShown = 5
)

// Report is the consolidated outcome of one validation run. ExitCode is the
// sole machine-readable pass/fail signal: 1 iff any structural error exists.
// Warnings and financial discrepancies are advisory and never affect it.
type Report struct {
	RunID       uuid.UUID `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Orders        *models.OrderValidationResult `json:"orders"`
	Sales         *models.SalesValidationResult `json:"sales,omitempty"`
	Discrepancies []models.Discrepancy          `json:"discrepancies"`

	ExitCode int `json:"exit_code"`
}

// ReportService turns structured validation and reconciliation results into a
// human-readable text report and a machine-readable JSON artifact.
type ReportService struct {
	logger zerolog.Logger
}

// NewReportService creates a new report service
func NewReportService(logger zerolog.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Build assembles the consolidated report and decides the exit code
func (s *ReportService) Build(orders *models.OrderValidationResult, sales *models.SalesValidationResult, discrepancies []models.Discrepancy) *Report {
	report := &Report{
		RunID:         uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		Orders:        orders,
		Sales:         sales,
		Discrepancies: discrepancies,
	}

	criticalErrors := len(orders.Errors)
	if sales != nil {
		criticalErrors += len(sales.Errors)
	}
	if criticalErrors > 0 {
		report.ExitCode = 1
	}

	return report
}

// Text renders the console report: orders summary, sales summary,
// cross-validation summary, capped error lists, capped discrepancy list, and
// the pass/fail conclusion.
func (s *ReportService) Text(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=============================================\n")
	fmt.Fprintf(&b, "VALIDATION REPORT\n")
	fmt.Fprintf(&b, "=============================================\n\n")

	fmt.Fprintf(&b, "ORDERS:\n")
	fmt.Fprintf(&b, "  Total rows: %d\n", r.Orders.Total)
	fmt.Fprintf(&b, "  Valid rows: %d\n", r.Orders.Valid)
	fmt.Fprintf(&b, "  Existing orders: %d\n", r.Orders.ExistingOrders)
	fmt.Fprintf(&b, "  New orders: %d\n", r.Orders.NewOrders)
	if r.Orders.Total > 0 {
		pct := float64(r.Orders.OrdersWithVenue) / float64(r.Orders.Total) * 100
		fmt.Fprintf(&b, "  Orders with venue: %d (%.1f%%)\n", r.Orders.OrdersWithVenue, pct)
	}
	fmt.Fprintf(&b, "  Duplicates: %d\n", len(r.Orders.Duplicates))
	fmt.Fprintf(&b, "  Errors: %d\n", len(r.Orders.Errors))
	fmt.Fprintf(&b, "  Warnings: %d\n\n", len(r.Orders.Warnings))

	if r.Sales != nil {
		fmt.Fprintf(&b, "SALES:\n")
		fmt.Fprintf(&b, "  Total rows: %d\n", r.Sales.Total)
		fmt.Fprintf(&b, "  Valid rows: %d\n", r.Sales.Valid)
		fmt.Fprintf(&b, "  Errors: %d\n", len(r.Sales.Errors))
		fmt.Fprintf(&b, "  Warnings: %d\n\n", len(r.Sales.Warnings))
	}

	fmt.Fprintf(&b, "CROSS-VALIDATION:\n")
	fmt.Fprintf(&b, "  Financial discrepancies (>5%%): %d\n\n", len(r.Discrepancies))

	if len(r.Orders.Errors) > 0 {
		fmt.Fprintf(&b, "Order errors (showing first %d):\n", maxErrorsShown)
		writeIssues(&b, r.Orders.Errors)
		b.WriteString("\n")
	}
	if r.Sales != nil && len(r.Sales.Errors) > 0 {
		fmt.Fprintf(&b, "Sales errors (showing first %d):\n", maxErrorsShown)
		writeIssues(&b, r.Sales.Errors)
		b.WriteString("\n")
	}

	if len(r.Discrepancies) > 0 {
		fmt.Fprintf(&b, "Financial discrepancies (showing first %d):\n", maxDiscrepanciesShown)
		for i, d := range r.Discrepancies {
			if i >= maxDiscrepanciesShown {
				fmt.Fprintf(&b, "  ...and %d more\n", len(r.Discrepancies)-maxDiscrepanciesShown)
				break
			}
			fmt.Fprintf(&b, "  - %s / %s: sales=$%s orders=$%s diff=$%s (%s%%)\n",
				d.EventKey, d.Field,
				d.SalesValue.StringFixed(2), d.OrdersValue.StringFixed(2),
				d.Difference.StringFixed(2), d.VariancePct.StringFixed(2))
		}
		b.WriteString("\nNote: discrepancies may be due to the sales export aggregating multiple event instances\n\n")
	}

	fmt.Fprintf(&b, "=============================================\n")
	if r.ExitCode == 0 {
		fmt.Fprintf(&b, "VALIDATION PASSED\n")
		fmt.Fprintf(&b, "No critical errors found. Safe to proceed with import.\n")
		if len(r.Orders.Warnings) > 0 {
			fmt.Fprintf(&b, "Note: %d warnings found (mostly optional fields).\n", len(r.Orders.Warnings))
		}
	} else {
		critical := len(r.Orders.Errors)
		if r.Sales != nil {
			critical += len(r.Sales.Errors)
		}
		fmt.Fprintf(&b, "VALIDATION FAILED\n")
		fmt.Fprintf(&b, "%d critical errors found. Fix errors before importing.\n", critical)
	}

	return b.String()
}

// WriteJSON writes the structured report to a timestamp-suffixed file next to
// the given prefix and returns the path written.
func (s *ReportService) WriteJSON(r *Report, pathPrefix string) (string, error) {
	path := fmt.Sprintf("%s-%s.json", pathPrefix, r.GeneratedAt.Format("20060102-150405"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("wrote report artifact")
	return path, nil
}

// SettlementText renders a settlement breakdown for console output
func (s *ReportService) SettlementText(b *models.SettlementBreakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Settlement for event %s\n", b.EventKey)
	fmt.Fprintf(&sb, "  Total revenue:   $%s\n", b.TotalRevenue.StringFixed(2))
	fmt.Fprintf(&sb, "  Comedian fees:   $%s\n", b.ComedianFees.StringFixed(2))
	fmt.Fprintf(&sb, "  Venue costs:     $%s\n", b.VenueCosts.StringFixed(2))
	fmt.Fprintf(&sb, "  Marketing costs: $%s\n", b.MarketingCosts.StringFixed(2))
	fmt.Fprintf(&sb, "  Total costs:     $%s\n", b.TotalCosts.StringFixed(2))
	fmt.Fprintf(&sb, "  Net profit:      $%s\n", b.NetProfit.StringFixed(2))
	fmt.Fprintf(&sb, "  Profit margin:   %s%%\n", b.ProfitMarginPct.StringFixed(2))
	fmt.Fprintf(&sb, "  Status:          %s\n", b.Status)
	return sb.String()
}

func writeIssues(b *strings.Builder, issues []models.RowIssue) {
	for i, issue := range issues {
		if i >= maxErrorsShown {
			fmt.Fprintf(b, "  ...and %d more\n", len(issues)-maxErrorsShown)
			return
		}
		fmt.Fprintf(b, "  - Row %d: %s\n", issue.Row, issue.Message)
	}
}
