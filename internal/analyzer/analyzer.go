package analyzer

import (
	"context"
	"net/url"
	"strings"
	"time"

	"phishmetrics/internal/stats"
	"phishmetrics/pkg/classifier"
	"phishmetrics/pkg/domain"
	"phishmetrics/pkg/logger"
	"phishmetrics/pkg/metrics"
	"phishmetrics/pkg/serrors"
	"phishmetrics/pkg/storage"

	"go.uber.org/zap"
)

// maxBulkURLs caps the number of URLs accepted in a single bulk submission.
const maxBulkURLs = 100

// endOfDay is added to date-only range bounds to make them inclusive.
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// analyzer is the concrete implementation of the Analyzer interface.
// It forwards URLs to the classification workflow, persists verdicts and
// computes aggregates over the stored history.
type analyzer struct {
	// classifier is the external workflow client that produces verdicts.
	classifier classifier.Client
	// storage is the persistence layer for analysis records.
	storage storage.Storage
}

// ValidateURL checks that a submitted URL is non-empty and parseable with an
// http or https scheme. The classification workflow only handles web URLs.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return serrors.With(serrors.ErrBadRequest, "url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return serrors.With(serrors.ErrBadRequest, "URL must use http or https")
	}

	return nil
}

// Analyze forwards a single URL to the classification workflow and persists
// the verdict. Persistence is best-effort: when the store is unavailable the
// verdict is still returned and the failure is logged, matching the behavior
// of the query paths which degrade to empty history.
func (a analyzer) Analyze(ctx context.Context, URL string) (*domain.AnalysisRecord, error) {
	if err := ValidateURL(URL); err != nil {
		return nil, err
	}

	start := time.Now()
	record, err := a.classifier.Classify(ctx, URL)
	if err != nil {
		metrics.ObserveClassification(time.Since(start).Seconds(), false, true)

		return nil, err
	}
	metrics.ObserveClassification(time.Since(start).Seconds(), record.IsPhishing, false)

	if record.AnalysisDate.IsZero() {
		record.AnalysisDate = time.Now().UTC()
	}

	stored, err := a.storage.StoreRecords(ctx, *record)
	if err != nil {
		logger.Error(ctx, "could not persist analysis record",
			zap.String("url", URL), zap.Error(err))

		return record, nil
	}

	return &stored[0], nil
}

// AnalyzeBulk classifies the given URLs one at a time, in order, and returns
// a per-URL outcome. A failed classification does not abort the batch; the
// failure is recorded in the corresponding result and processing continues
// with the next URL. The batch stops early only when the request context is
// cancelled.
func (a analyzer) AnalyzeBulk(ctx context.Context, URLs []string) (*classifier.BulkResult, error) {
	if len(URLs) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "at least one URL is required")
	}
	if len(URLs) > maxBulkURLs {
		return nil, serrors.With(serrors.ErrBadRequest, "at most %d URLs are allowed per batch", maxBulkURLs)
	}

	bulk := &classifier.BulkResult{Results: make([]classifier.Result, 0, len(URLs))}
	for _, u := range URLs {
		if err := ctx.Err(); err != nil {
			return bulk, err
		}

		record, err := a.Analyze(ctx, u)
		if err != nil {
			bulk.Append(classifier.Result{
				URL:    u,
				Status: classifier.StatusError,
				Error:  err.Error(),
			})

			continue
		}

		bulk.Append(classifier.Result{
			URL:    record.URL,
			Status: classifier.StatusSuccess,
			Data:   record,
		})
	}

	return bulk, nil
}

// Statistics computes the summary, confidence distribution and source usage
// aggregates over the records matching the given range. Aggregates are
// computed fresh from the stored history on every call.
func (a analyzer) Statistics(ctx context.Context, filter RangeFilter) (*Statistics, error) {
	records := a.records(ctx, filter)

	return &Statistics{
		Summary:                stats.Compute(records),
		ConfidenceDistribution: stats.ConfidenceDistribution(records),
		SourcesUsage:           stats.SourcesUsage(records),
	}, nil
}

// Analyses returns the stored analysis records matching the given range,
// most recent first.
func (a analyzer) Analyses(ctx context.Context, filter RangeFilter) ([]domain.AnalysisRecord, error) {
	return a.records(ctx, filter), nil
}

// DailyCounts returns per-day analysis counts for the given range. Days with
// no analyses are omitted.
func (a analyzer) DailyCounts(ctx context.Context, filter RangeFilter) ([]domain.DailyCount, error) {
	return stats.DailyCounts(a.records(ctx, filter)), nil
}

// records fetches the history matching the filter. Storage failures degrade
// to an empty history so read-only endpoints keep working when the store is
// down; the failure is logged.
func (a analyzer) records(ctx context.Context, filter RangeFilter) []domain.AnalysisRecord {
	records, err := a.storage.Records(ctx, storageFilter(filter))
	if err != nil {
		logger.Error(ctx, "could not fetch analysis records", zap.Error(err))

		return nil
	}

	return records
}

// storageFilter converts a range filter to the storage representation,
// extending date-only end bounds to the last second of that day.
func storageFilter(filter RangeFilter) storage.RecordFilter {
	out := storage.RecordFilter{Start: filter.Start}
	if filter.End != nil {
		end := *filter.End
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
			end = end.Add(endOfDay)
		}
		out.End = &end
	}

	return out
}

// New creates a new Analyzer backed by the provided classification client and
// storage.
func New(classifierClient classifier.Client, store storage.Storage) Analyzer {
	return &analyzer{
		classifier: classifierClient,
		storage:    store,
	}
}
