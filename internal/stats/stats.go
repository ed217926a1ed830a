// Package stats computes aggregate statistics over analysis records. All
// functions are pure folds over their input: they never mutate records,
// never touch storage and return well-defined zero values for empty input.
package stats

import (
	"math"
	"phishmetrics/pkg/domain"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Risk score bucket boundaries. low < 40 <= medium < 70 <= high.
const (
	mediumRiskFloor = 40
	highRiskFloor   = 70
)

// round2 rounds to two decimal places. It is shared by AvgRiskScore and
// PhishingPercentage so the two fields always agree on rounding behavior.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute derives the summary statistics for a set of records in a single
// pass. An empty input yields an all-zero summary, not an error.
func Compute(records []domain.AnalysisRecord) domain.Summary {
	var s domain.Summary
	s.TotalAnalyses = len(records)
	if s.TotalAnalyses == 0 {
		return s
	}

	scores := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.IsPhishing {
			s.PhishingDetected++
		}
		switch {
		case rec.RiskScore < mediumRiskFloor:
			s.RiskDistribution.Low++
		case rec.RiskScore < highRiskFloor:
			s.RiskDistribution.Medium++
		default:
			s.RiskDistribution.High++
		}
		scores = append(scores, float64(rec.RiskScore))
	}

	s.SafeURLs = s.TotalAnalyses - s.PhishingDetected
	s.AvgRiskScore = round2(stat.Mean(scores, nil))
	s.PhishingPercentage = round2(float64(s.PhishingDetected) / float64(s.TotalAnalyses) * 100)

	return s
}

// ConfidenceDistribution counts records per confidence level. A record with
// no level counts as low. A record carrying a label outside the three-value
// set is not counted at all; the upstream data occasionally contains such
// labels and they are dropped rather than bucketed.
func ConfidenceDistribution(records []domain.AnalysisRecord) domain.ConfidenceDistribution {
	var dist domain.ConfidenceDistribution
	for _, rec := range records {
		level := rec.ConfidenceLevel
		if level == "" {
			level = domain.ConfidenceLow
		}
		switch level {
		case domain.ConfidenceLow:
			dist.Low++
		case domain.ConfidenceMedium:
			dist.Medium++
		case domain.ConfidenceHigh:
			dist.High++
		}
	}

	return dist
}

// SourcesUsage counts, per source name, the number of records in which that
// source appears. A record contributes once per distinct listed source; a
// record with no sources contributes nothing.
func SourcesUsage(records []domain.AnalysisRecord) domain.SourcesUsage {
	usage := make(domain.SourcesUsage)
	for _, rec := range records {
		if len(rec.SourcesChecked) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(rec.SourcesChecked))
		for _, source := range rec.SourcesChecked {
			if _, dup := seen[source]; dup {
				continue
			}
			seen[source] = struct{}{}
			usage[source]++
		}
	}

	return usage
}

// DailyCounts groups records by the calendar day of their analysis date,
// truncating any time component, and returns one entry per day that has at
// least one record, sorted ascending by date. Days without records are
// omitted (sparse series).
func DailyCounts(records []domain.AnalysisRecord) []domain.DailyCount {
	byDay := make(map[string]int)
	for _, rec := range records {
		byDay[rec.AnalysisDate.Format("2006-01-02")]++
	}

	out := make([]domain.DailyCount, 0, len(byDay))
	for day, count := range byDay {
		out = append(out, domain.DailyCount{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out
}
