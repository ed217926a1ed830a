package analyzer_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"phishmetrics/internal/analyzer"
	"phishmetrics/pkg/domain"
	"phishmetrics/pkg/logger"
	"phishmetrics/pkg/serrors"
	"phishmetrics/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

// stubClassifier answers Classify from a canned map of verdicts per URL.
type stubClassifier struct {
	verdicts map[string]*domain.AnalysisRecord
	errs     map[string]error
	calls    []string
}

func (s *stubClassifier) Classify(_ context.Context, URL string) (*domain.AnalysisRecord, error) {
	s.calls = append(s.calls, URL)
	if err, ok := s.errs[URL]; ok {
		return nil, err
	}
	if rec, ok := s.verdicts[URL]; ok {
		out := *rec

		return &out, nil
	}

	return &domain.AnalysisRecord{URL: URL, RiskScore: 10, ConfidenceLevel: domain.ConfidenceLow}, nil
}

// stubStorage keeps records in memory and can be forced to fail.
type stubStorage struct {
	records    []domain.AnalysisRecord
	storeErr   error
	recordsErr error
	lastFilter storage.RecordFilter
}

func (s *stubStorage) StoreRecords(_ context.Context, records ...domain.AnalysisRecord) ([]domain.AnalysisRecord, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	s.records = append(s.records, records...)

	return records, nil
}

func (s *stubStorage) Records(_ context.Context, filter storage.RecordFilter) ([]domain.AnalysisRecord, error) {
	s.lastFilter = filter
	if s.recordsErr != nil {
		return nil, s.recordsErr
	}

	return s.records, nil
}

func (s *stubStorage) Close() error { return nil }

func newAnalyzer(cl *stubClassifier, st *stubStorage) analyzer.Analyzer {
	return analyzer.New(cl, st)
}

func TestAnalyze(t *testing.T) {
	cl := &stubClassifier{verdicts: map[string]*domain.AnalysisRecord{
		"https://phish.example/login": {
			URL:             "https://phish.example/login",
			IsPhishing:      true,
			RiskScore:       92,
			ConfidenceLevel: domain.ConfidenceHigh,
			SourcesChecked:  domain.SourceList{"virustotal"},
		},
	}}
	st := &stubStorage{}

	rec, err := newAnalyzer(cl, st).Analyze(context.Background(), "https://phish.example/login")
	require.NoError(t, err)
	require.True(t, rec.IsPhishing)
	require.Equal(t, 92, rec.RiskScore)
	require.False(t, rec.AnalysisDate.IsZero(), "missing analysis date should be defaulted")
	require.Len(t, st.records, 1)
}

func TestAnalyzeInvalidURL(t *testing.T) {
	cl := &stubClassifier{}
	st := &stubStorage{}
	a := newAnalyzer(cl, st)

	for _, in := range []string{"", "   ", "ftp://example.com", "not a url at all\x7f"} {
		_, err := a.Analyze(context.Background(), in)
		require.ErrorIs(t, err, serrors.ErrBadRequest, "input %q", in)
	}
	require.Empty(t, cl.calls, "invalid URLs must not reach the classifier")
}

func TestAnalyzeClassifierFailure(t *testing.T) {
	cl := &stubClassifier{errs: map[string]error{
		"https://down.example": serrors.With(serrors.ErrUpstream, "HTTP 502: bad gateway"),
	}}
	st := &stubStorage{}

	_, err := newAnalyzer(cl, st).Analyze(context.Background(), "https://down.example")
	require.ErrorIs(t, err, serrors.ErrUpstream)
	require.Empty(t, st.records, "failed classifications must not be persisted")
}

func TestAnalyzeStorageFailureStillReturnsVerdict(t *testing.T) {
	cl := &stubClassifier{}
	st := &stubStorage{storeErr: errors.New("connection refused")}

	rec, err := newAnalyzer(cl, st).Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, "https://example.com", rec.URL)
}

func TestAnalyzeBulk(t *testing.T) {
	cl := &stubClassifier{errs: map[string]error{
		"https://down.example": serrors.With(serrors.ErrTimeout, "request timeout (>1m0s)"),
	}}
	st := &stubStorage{}

	urls := []string{"https://a.example", "https://down.example", "https://b.example"}
	bulk, err := newAnalyzer(cl, st).AnalyzeBulk(context.Background(), urls)
	require.NoError(t, err)
	require.Equal(t, 3, bulk.TotalURLs)
	require.Equal(t, 2, bulk.Successful)
	require.Equal(t, 1, bulk.Failed)
	require.Len(t, bulk.Results, 3)

	// order is preserved and a failure does not abort the batch
	require.Equal(t, urls, cl.calls)
	require.True(t, bulk.Results[0].Succeeded())
	require.False(t, bulk.Results[1].Succeeded())
	require.Contains(t, bulk.Results[1].Error, "request timeout")
	require.True(t, bulk.Results[2].Succeeded())
	require.Len(t, st.records, 2)
}

func TestAnalyzeBulkLimits(t *testing.T) {
	a := newAnalyzer(&stubClassifier{}, &stubStorage{})

	_, err := a.AnalyzeBulk(context.Background(), nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	tooMany := make([]string, 101)
	for i := range tooMany {
		tooMany[i] = "https://example.com"
	}
	_, err = a.AnalyzeBulk(context.Background(), tooMany)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestAnalyzeBulkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bulk, err := newAnalyzer(&stubClassifier{}, &stubStorage{}).
		AnalyzeBulk(ctx, []string{"https://example.com"})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, bulk.TotalURLs)
}

func TestStatistics(t *testing.T) {
	now := time.Now()
	st := &stubStorage{records: []domain.AnalysisRecord{
		{URL: "a", IsPhishing: true, RiskScore: 85, ConfidenceLevel: domain.ConfidenceHigh,
			AnalysisDate: now, SourcesChecked: domain.SourceList{"virustotal", "urlscan"}},
		{URL: "b", RiskScore: 10, ConfidenceLevel: domain.ConfidenceLow,
			AnalysisDate: now, SourcesChecked: domain.SourceList{"virustotal"}},
	}}

	got, err := newAnalyzer(&stubClassifier{}, st).Statistics(context.Background(), analyzer.RangeFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, got.TotalAnalyses)
	require.Equal(t, 1, got.PhishingDetected)
	require.Equal(t, 1, got.SafeURLs)
	require.Equal(t, 2, got.SourcesUsage["virustotal"])
	require.Equal(t, 1, got.SourcesUsage["urlscan"])
	require.Equal(t, 1, got.ConfidenceDistribution.High)
}

func TestStatisticsStorageFailureDegradesToEmpty(t *testing.T) {
	st := &stubStorage{recordsErr: errors.New("connection refused")}

	got, err := newAnalyzer(&stubClassifier{}, st).Statistics(context.Background(), analyzer.RangeFilter{})
	require.NoError(t, err)
	require.Equal(t, 0, got.TotalAnalyses)
	require.Equal(t, 0.0, got.AvgRiskScore)
}

func TestRangeFilterExtendsDateOnlyEnd(t *testing.T) {
	st := &stubStorage{}
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := newAnalyzer(&stubClassifier{}, st).
		Analyses(context.Background(), analyzer.RangeFilter{End: &end})
	require.NoError(t, err)
	require.NotNil(t, st.lastFilter.End)
	require.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), *st.lastFilter.End)

	// an end bound that already carries a time of day is passed through
	precise := time.Date(2026, 1, 31, 12, 30, 0, 0, time.UTC)
	_, err = newAnalyzer(&stubClassifier{}, st).
		Analyses(context.Background(), analyzer.RangeFilter{End: &precise})
	require.NoError(t, err)
	require.Equal(t, precise, *st.lastFilter.End)
}
