package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillz-id/gigpig-settlement/src/models"
)

func orderResultWithErrors(n int) *models.OrderValidationResult {
	res := &models.OrderValidationResult{
		Total:         n,
		MissingFields: map[string]int{},
	}
	for i := 0; i < n; i++ {
		res.Errors = append(res.Errors, models.RowIssue{Row: i + 2, Message: "Missing Order ID"})
	}
	return res
}

func TestBuild_ExitCode(t *testing.T) {
	svc := NewReportService(testLogger())

	clean := &models.OrderValidationResult{Total: 5, Valid: 5, MissingFields: map[string]int{}}

	t.Run("no errors", func(t *testing.T) {
		r := svc.Build(clean, nil, nil)
		assert.Equal(t, 0, r.ExitCode)
	})

	t.Run("warnings and discrepancies stay advisory", func(t *testing.T) {
		warned := &models.OrderValidationResult{
			Total: 5, Valid: 5,
			Warnings:      []models.RowIssue{{Row: 2, Message: "Missing Event ID"}},
			MissingFields: map[string]int{"Event ID": 1},
		}
		discs := []models.Discrepancy{{EventKey: "Comedy Night", Field: "Gross Sales"}}
		r := svc.Build(warned, nil, discs)
		assert.Equal(t, 0, r.ExitCode)
	})

	t.Run("order errors fail the run", func(t *testing.T) {
		r := svc.Build(orderResultWithErrors(1), nil, nil)
		assert.Equal(t, 1, r.ExitCode)
	})

	t.Run("sales errors fail the run", func(t *testing.T) {
		sales := &models.SalesValidationResult{
			Total:  1,
			Errors: []models.RowIssue{{Row: 2, Message: "Invalid Gross sales format: ??"}},
		}
		r := svc.Build(clean, sales, nil)
		assert.Equal(t, 1, r.ExitCode)
	})
}

func TestText_TruncatesLongLists(t *testing.T) {
	svc := NewReportService(testLogger())

	r := svc.Build(orderResultWithErrors(14), nil, nil)
	text := svc.Text(r)

	assert.Contains(t, text, "...and 4 more")
	assert.Equal(t, maxErrorsShown, strings.Count(text, "- Row "), "only the first 10 errors print")
	assert.Contains(t, text, "VALIDATION FAILED")
	assert.Contains(t, text, "14 critical errors found")

	// Full list stays available on the structured result
	assert.Len(t, r.Orders.Errors, 14)
}

func TestText_DiscrepancyCapAndNote(t *testing.T) {
	svc := NewReportService(testLogger())

	clean := &models.OrderValidationResult{Total: 1, Valid: 1, MissingFields: map[string]int{}}
	var discs []models.Discrepancy
	for i := 0; i < 7; i++ {
		discs = append(discs, models.Discrepancy{
			EventKey:    fmt.Sprintf("Event %d", i),
			Field:       "Gross Sales",
			SalesValue:  decimal.NewFromFloat(100),
			OrdersValue: decimal.NewFromFloat(50),
			Difference:  decimal.NewFromFloat(50),
			VariancePct: decimal.NewFromFloat(50),
		})
	}

	r := svc.Build(clean, nil, discs)
	text := svc.Text(r)

	assert.Contains(t, text, "...and 2 more")
	assert.Contains(t, text, "aggregating multiple event instances")
	assert.Contains(t, text, "VALIDATION PASSED", "discrepancies never affect pass/fail")
}

func TestWriteJSON_TimestampSuffixAndRoundTrip(t *testing.T) {
	svc := NewReportService(testLogger())
	dir := t.TempDir()

	r := svc.Build(orderResultWithErrors(2), nil, nil)
	path, err := svc.WriteJSON(r, filepath.Join(dir, "validation-report"))
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "validation-report-"))
	assert.True(t, strings.HasSuffix(base, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, 1, decoded.ExitCode)
	assert.Len(t, decoded.Orders.Errors, 2)
}

func TestSettlementText(t *testing.T) {
	svc := NewReportService(testLogger())

	b := models.NewSettlementBreakdown("EV-1",
		decimal.NewFromFloat(1000), decimal.NewFromFloat(400),
		decimal.NewFromFloat(250), decimal.NewFromFloat(100))
	text := svc.SettlementText(b)

	assert.Contains(t, text, "Net profit:      $250.00")
	assert.Contains(t, text, "Profit margin:   25.00%")
	assert.Contains(t, text, "Status:          pending")
}
