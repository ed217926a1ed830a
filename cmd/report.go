package main

import (
	"context"
	"os"
	"time"

	"phishmetrics/internal/analyzer"
	"phishmetrics/internal/config"
	"phishmetrics/internal/report"
	"phishmetrics/internal/stats"
	"phishmetrics/pkg/logger"
	"phishmetrics/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCommand constructs the 'report' subcommand that renders the stored
// analysis history for a date range as a PDF file.
func reportCommand(cfg *config.Config) *cobra.Command {
	var (
		startFlag string
		endFlag   string
		outFlag   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generates a PDF report of the analysis history",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			filter, err := parseRange(startFlag, endFlag)
			if err != nil {
				logger.Fatal(ctx, "invalid date range", zap.Error(err))
			}

			records, err := strg.Records(ctx, filter)
			if err != nil {
				logger.Fatal(ctx, "could not fetch analysis records", zap.Error(err))
			}

			out, err := report.Generate(report.Input{
				GeneratedAt: time.Now(),
				PeriodStart: filter.Start,
				PeriodEnd:   filter.End,
				Statistics: analyzer.Statistics{
					Summary:                stats.Compute(records),
					ConfidenceDistribution: stats.ConfidenceDistribution(records),
					SourcesUsage:           stats.SourcesUsage(records),
				},
				DailyCounts: stats.DailyCounts(records),
				Records:     records,
			})
			if err != nil {
				logger.Fatal(ctx, "could not render report", zap.Error(err))
			}

			if err := os.WriteFile(outFlag, out, 0o644); err != nil {
				logger.Fatal(ctx, "could not write report file", zap.Error(err))
			}
			logger.Info(ctx, "report written",
				zap.String("path", outFlag), zap.Int("records", len(records)))
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Inclusive end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outFlag, "out", "phishing-report.pdf", "Output file path")

	return cmd
}

// parseRange converts the date flags to a storage filter, extending the end
// bound to cover the whole last day.
func parseRange(start, end string) (storage.RecordFilter, error) {
	var filter storage.RecordFilter

	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return filter, err //nolint: wrapcheck
		}
		filter.Start = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return filter, err //nolint: wrapcheck
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filter.End = &t
	}

	return filter, nil
}
