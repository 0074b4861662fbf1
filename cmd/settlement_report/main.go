package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/chillz-id/gigpig-settlement/src/models"
	"github.com/chillz-id/gigpig-settlement/src/services"
)

// settlement_report computes the cost/revenue split for one event from its
// recorded revenue and itemized cost lines, and optionally transitions the
// settlement status (an explicit user action, never automatic).
func main() {
	var (
		eventID   string
		setStatus string
	)

	flag.StringVar(&eventID, "event", "", "Event ID (UUID)")
	flag.StringVar(&setStatus, "set-status", "", "Transition settlement status: pending, processing, or completed")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if eventID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if _, err := uuid.Parse(eventID); err != nil {
		logger.Fatal().Err(err).Str("event", eventID).Msg("event ID must be a UUID")
	}

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
	settlements := services.NewSettlementService(db, logger)

	if setStatus != "" {
		status := models.SettlementStatus(setStatus)
		if err := settlements.UpdateStatus(ctx, eventID, status); err != nil {
			logger.Fatal().Err(err).Msg("update settlement status")
		}
	}

	breakdown, err := settlements.SettleEvent(ctx, eventID)
	if err != nil {
		logger.Fatal().Err(err).Msg("compute settlement")
	}

	reporter := services.NewReportService(logger)
	fmt.Print(reporter.SettlementText(breakdown))
}
