package analyzer

import (
	"context"
	"time"

	"phishmetrics/pkg/classifier"
	"phishmetrics/pkg/domain"
)

// RangeFilter restricts statistics and history queries to a date range.
// Nil bounds are open-ended.
type RangeFilter struct {
	// Start is the inclusive lower bound on the analysis date.
	Start *time.Time
	// End is the inclusive upper bound on the analysis date. Date-only values
	// (midnight) are extended to the end of that day so a range like
	// [2026-01-01, 2026-01-31] covers the whole last day.
	End *time.Time
}

// Statistics bundles the aggregates computed over a set of analysis records.
type Statistics struct {
	domain.Summary

	ConfidenceDistribution domain.ConfidenceDistribution `json:"confidence_distribution"`
	SourcesUsage           domain.SourcesUsage           `json:"sources_usage"`
}

type Analyzer interface {
	Analyze(ctx context.Context, URL string) (*domain.AnalysisRecord, error)
	AnalyzeBulk(ctx context.Context, URLs []string) (*classifier.BulkResult, error)
	Statistics(ctx context.Context, filter RangeFilter) (*Statistics, error)
	Analyses(ctx context.Context, filter RangeFilter) ([]domain.AnalysisRecord, error)
	DailyCounts(ctx context.Context, filter RangeFilter) ([]domain.DailyCount, error)
}
