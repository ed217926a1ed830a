package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnalysisID uniquely identifies a stored analysis record.
// It wraps uuid.UUID to provide type safety at the domain layer.
type AnalysisID uuid.UUID

// ConfidenceLevel is the categorical trust the classifier attached to its
// verdict. The well-known values are low, medium and high; the type is an
// open string because upstream workflows occasionally emit other labels.
type ConfidenceLevel string

const (
	// ConfidenceLow is the default level when the classifier reported none.
	ConfidenceLow ConfidenceLevel = "low"
	// ConfidenceMedium indicates moderate trust in the verdict.
	ConfidenceMedium ConfidenceLevel = "medium"
	// ConfidenceHigh indicates strong trust in the verdict.
	ConfidenceHigh ConfidenceLevel = "high"
)

// SourceList is the canonical form of the classifier's "sources checked"
// field. Upstream it arrives either as a JSON array of names or as a single
// comma-separated string; both decode into a plain list so that nothing past
// the ingestion boundary branches on representation.
type SourceList []string

// UnmarshalJSON accepts either a JSON array of strings or a single
// comma-separated string and normalizes to a trimmed list.
func (s *SourceList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*s = normalizeSources(items)

		return nil
	}

	var joined string
	if err := json.Unmarshal(trimmed, &joined); err != nil {
		return err
	}
	*s = ParseSources(joined)

	return nil
}

// MarshalJSON always emits the canonical array form. A nil list marshals as
// an empty array rather than null.
func (s SourceList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]string(s))
}

// ParseSources splits a comma-separated source string into a normalized list.
// Whitespace around entries is trimmed and empty entries are dropped.
func ParseSources(joined string) SourceList {
	if joined == "" {
		return nil
	}

	return normalizeSources(strings.Split(joined, ","))
}

// String joins the list back into the comma-separated wire/storage form.
func (s SourceList) String() string {
	return strings.Join(s, ", ")
}

func normalizeSources(items []string) SourceList {
	out := make(SourceList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}

	return out
}

// AnalysisRecord is one phishing-classification outcome. Records are
// immutable once stored; statistics are always derived from them, never
// written back.
type AnalysisRecord struct {
	// ID is the unique identifier of the record.
	ID AnalysisID `json:"id"`

	// URL is the classified resource.
	URL string `json:"url"`
	// IsPhishing is the classifier's boolean verdict.
	IsPhishing bool `json:"is_phishing"`
	// RiskScore is the danger level in [0,100].
	RiskScore int `json:"risk_score"`
	// ConfidenceLevel is the categorical trust in the verdict.
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	// AnalysisDate is the classification timestamp set by the workflow.
	AnalysisDate time.Time `json:"analysis_date"`
	// SourcesChecked lists the signals consulted during classification.
	SourcesChecked SourceList `json:"sources_checked"`
	// ErrorLog is present only when the classification partially failed.
	ErrorLog string `json:"error_log,omitempty"`

	// CreatedAt is the time the record was persisted.
	CreatedAt time.Time `json:"created_at"`
}

// RiskDistribution buckets records by risk score: low is score < 40,
// medium is 40 <= score < 70 and high is score >= 70. The three buckets
// partition any valid record set exactly once.
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ConfidenceDistribution counts records per confidence level. A record
// without a level counts as low; unrecognized labels are not counted.
type ConfidenceDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// SourcesUsage maps a source name to the number of records in which it was
// consulted. A record contributes once per distinct listed source.
type SourcesUsage map[string]int

// DailyCount is the number of analyses performed on one calendar day.
// Date is the day portion of the analysis timestamp, formatted YYYY-MM-DD.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Summary holds aggregate statistics derived from a set of analysis records.
// It has no persisted identity; every query recomputes it from scratch.
type Summary struct {
	// TotalAnalyses is the number of records in the input set.
	TotalAnalyses int `json:"total_analyses"`
	// PhishingDetected is the number of records with a phishing verdict.
	PhishingDetected int `json:"phishing_detected"`
	// SafeURLs is always TotalAnalyses - PhishingDetected.
	SafeURLs int `json:"safe_urls"`
	// AvgRiskScore is the mean risk score rounded to two decimals,
	// zero for an empty input set.
	AvgRiskScore float64 `json:"avg_risk_score"`
	// PhishingPercentage is PhishingDetected/TotalAnalyses*100 rounded to
	// two decimals, zero for an empty input set.
	PhishingPercentage float64 `json:"phishing_percentage"`
	// RiskDistribution buckets the input set by risk score.
	RiskDistribution RiskDistribution `json:"risk_distribution"`
}
