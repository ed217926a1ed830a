package domain_test

import (
	"encoding/json"
	"phishmetrics/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceList_UnmarshalString(t *testing.T) {
	var s domain.SourceList
	require.NoError(t, json.Unmarshal([]byte(`"VirusTotal, Heuristic , SafeBrowsing"`), &s))
	require.Equal(t, domain.SourceList{"VirusTotal", "Heuristic", "SafeBrowsing"}, s)
}

func TestSourceList_UnmarshalArray(t *testing.T) {
	var s domain.SourceList
	require.NoError(t, json.Unmarshal([]byte(`[" VirusTotal", "Heuristic", ""]`), &s))
	require.Equal(t, domain.SourceList{"VirusTotal", "Heuristic"}, s)
}

func TestSourceList_UnmarshalEmpty(t *testing.T) {
	var s domain.SourceList
	require.NoError(t, json.Unmarshal([]byte(`""`), &s))
	require.Nil(t, s)

	require.NoError(t, json.Unmarshal([]byte(`[]`), &s))
	require.Nil(t, s)
}

func TestSourceList_UnmarshalInvalid(t *testing.T) {
	var s domain.SourceList
	require.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestSourceList_MarshalCanonical(t *testing.T) {
	b, err := json.Marshal(domain.SourceList{"VirusTotal", "Heuristic"})
	require.NoError(t, err)
	require.JSONEq(t, `["VirusTotal","Heuristic"]`, string(b))

	b, err = json.Marshal(domain.SourceList(nil))
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(b))
}

func TestSourceList_RoundTripThroughString(t *testing.T) {
	s := domain.ParseSources("VirusTotal,Heuristic")
	require.Equal(t, "VirusTotal, Heuristic", s.String())
	require.Equal(t, s, domain.ParseSources(s.String()))
}

func TestAnalysisRecord_DecodeWireFormats(t *testing.T) {
	// comma-separated string form, as the workflow webhook emits it
	var rec domain.AnalysisRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"url": "https://example.com/login",
		"is_phishing": true,
		"risk_score": 85,
		"confidence_level": "high",
		"analysis_date": "2024-01-01T10:00:00Z",
		"sources_checked": "VirusTotal, Heuristic"
	}`), &rec))
	require.True(t, rec.IsPhishing)
	require.Equal(t, 85, rec.RiskScore)
	require.Equal(t, domain.ConfidenceHigh, rec.ConfidenceLevel)
	require.Equal(t, domain.SourceList{"VirusTotal", "Heuristic"}, rec.SourcesChecked)

	// list form
	require.NoError(t, json.Unmarshal([]byte(`{
		"url": "https://example.com",
		"is_phishing": false,
		"risk_score": 10,
		"confidence_level": "low",
		"analysis_date": "2024-01-02T09:00:00Z",
		"sources_checked": ["VirusTotal"]
	}`), &rec))
	require.Equal(t, domain.SourceList{"VirusTotal"}, rec.SourcesChecked)
}
