// Command dashboard prints the current budget period's totals and lines.
//
// Configuration comes from the environment (a .env file is honored):
//
//	ENVELOPPE_TOKEN    API token (required)
//	ENVELOPPE_API_URL  API base URL (optional)
//	ENVELOPPE_PAY_DAY  pay day of month; <= 1 means calendar months
//	SENTRY_DSN         enables Sentry error tracking (optional)
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mbellanger/enveloppe-go/pkg/enveloppe"
)

func main() {
	_ = godotenv.Load()

	token := os.Getenv("ENVELOPPE_TOKEN")
	if token == "" {
		log.Fatal("ENVELOPPE_TOKEN is required")
	}

	payDay := 0
	if raw := os.Getenv("ENVELOPPE_PAY_DAY"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("invalid ENVELOPPE_PAY_DAY %q: %v", raw, err)
		}
		payDay = parsed
	}

	logger := enveloppe.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	client, err := enveloppe.NewClient(&enveloppe.ClientOptions{
		Token:     token,
		BaseURL:   os.Getenv("ENVELOPPE_API_URL"),
		Logger:    logger,
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	dashboard := client.Dashboard(&enveloppe.DashboardOptions{
		PayDay: payDay,
	})

	ctx := context.Background()
	if err := dashboard.Refresh(ctx); err != nil {
		log.Fatalf("failed to load dashboard: %v", err)
	}

	period := dashboard.Period()
	agg := dashboard.Aggregate()
	if agg.Budget == nil {
		fmt.Printf("No budget for %s\n", period)
		return
	}

	totals := dashboard.Totals()
	fmt.Printf("Budget %s (%s)\n", period, agg.Budget.Description)
	fmt.Printf("  rollover:  %10.2f\n", totals.Rollover)
	fmt.Printf("  income:    %10.2f\n", totals.Income)
	fmt.Printf("  available: %10.2f\n", totals.Available)
	fmt.Printf("  expenses:  %10.2f\n", totals.Expenses)
	fmt.Printf("  remaining: %10.2f\n", totals.Remaining)

	for _, line := range dashboard.Lines() {
		marker := " "
		if line.CheckedAt != nil {
			marker = "x"
		}
		fmt.Printf("  [%s] %-30s %10.2f %s\n", marker, line.Name, line.Amount, line.Kind)
	}
}
