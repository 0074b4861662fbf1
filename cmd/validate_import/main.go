package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/chillz-id/gigpig-settlement/src/models"
	"github.com/chillz-id/gigpig-settlement/src/parser"
	"github.com/chillz-id/gigpig-settlement/src/services"
)

// validate_import validates a platform export before import: structural checks,
// in-batch duplicate detection, existing/new classification against the
// database, per-event aggregation, and cross-validation against the
// pre-aggregated sales export when one is supplied.
//
// Exit code 0 means safe to import (warnings allowed); 1 means critical errors
// or a collaborator failure.
func main() {
	var (
		ordersPath   string
		salesPath    string
		platformStr  string
		jsonOrders   bool
		tolerance    float64
		reportPrefix string
		printJSON    bool
	)

	flag.StringVar(&ordersPath, "orders", "", "Path to per-order export (CSV, or JSON with -json-orders)")
	flag.StringVar(&salesPath, "sales", "", "Path to pre-aggregated sales CSV (optional)")
	flag.StringVar(&platformStr, "platform", string(models.PlatformEventbrite), "Source platform: humanitix or eventbrite")
	flag.BoolVar(&jsonOrders, "json-orders", false, "Orders file is a Humanitix API JSON payload")
	flag.Float64Var(&tolerance, "tolerance", 5, "Cross-validation variance tolerance in percent")
	flag.StringVar(&reportPrefix, "report", "validation-report", "Report file prefix (timestamp suffix is appended)")
	flag.BoolVar(&printJSON, "print-json", false, "Print the structured report to stdout instead of text")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if ordersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	platform := models.Platform(platformStr)
	if !platform.IsValid() {
		logger.Fatal().Str("platform", platformStr).Msg("unknown platform")
	}

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx := context.Background()

	// Load exports
	var orders []models.OrderRecord
	if jsonOrders {
		orders, err = parser.ReadHumanitixOrders(ordersPath)
	} else {
		orders, err = parser.ReadOrdersCSV(ordersPath, platform)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("path", ordersPath).Msg("read orders export")
	}
	logger.Info().Int("orders", len(orders)).Msg("loaded orders export")

	var sales []models.SalesRecord
	if salesPath != "" {
		sales, err = parser.ReadSalesCSV(salesPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", salesPath).Msg("read sales export")
		}
		logger.Info().Int("sales", len(sales)).Msg("loaded sales export")
	}

	// Snapshot of persisted order IDs, fetched once before validation starts.
	// Without it, existing/new classification cannot be trusted, so a failure
	// here is fatal and no partial report is produced.
	store := services.NewOrderStoreService(db)
	existingIDs, err := store.ExistingOrderIDs(ctx, platform)
	if err != nil {
		logger.Fatal().Err(err).Msg("fetch existing order snapshot")
	}
	logger.Info().Int("existing", len(existingIDs)).Msg("fetched persisted order snapshot")

	// Validate
	validator := services.NewValidationService(logger)
	orderResult, err := validator.ValidateOrders(orders, existingIDs)
	if err != nil {
		logger.Fatal().Err(err).Msg("validate orders")
	}

	var salesResult *models.SalesValidationResult
	if salesPath != "" {
		salesResult = validator.ValidateSales(sales)
	}

	// Aggregate and cross-validate
	aggregator := services.NewAggregationService(logger)
	orderSummaries := aggregator.Aggregate(validator.ValidRecords(orders))

	var discrepancies []models.Discrepancy
	if salesPath != "" {
		salesSummaries := aggregator.AggregateSales(sales)
		reconciler := services.NewReconciliationService(logger)
		discrepancies = reconciler.Reconcile(orderSummaries, salesSummaries, decimal.NewFromFloat(tolerance))
	}

	// Report
	reporter := services.NewReportService(logger)
	report := reporter.Build(orderResult, salesResult, discrepancies)

	if _, err := reporter.WriteJSON(report, reportPrefix); err != nil {
		logger.Fatal().Err(err).Msg("write report artifact")
	}

	if printJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Fatal().Err(err).Msg("encode report")
		}
	} else {
		fmt.Print(reporter.Text(report))
	}

	os.Exit(report.ExitCode)
}
