// Package report renders the stored analysis history and its aggregates as a
// PDF document suitable for sharing outside the dashboard.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"phishmetrics/internal/analyzer"
	"phishmetrics/pkg/domain"

	"github.com/phpdave11/gofpdf"
)

// maxRecentRows limits the recent-analyses table so the document stays small.
const maxRecentRows = 50

// Input carries everything the renderer needs. Aggregates are computed by the
// caller so the document always matches what the API reports for the same
// range.
type Input struct {
	GeneratedAt time.Time
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Statistics  analyzer.Statistics
	DailyCounts []domain.DailyCount
	Records     []domain.AnalysisRecord
}

// Generate renders the report and returns the PDF bytes.
func Generate(in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("Phishing URL Analysis Report", false)
	pdf.AddPage()

	// title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Phishing URL Analysis Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at: %s", in.GeneratedAt.Format("2006-01-02 15:04:05")),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s", formatPeriod(in.PeriodStart, in.PeriodEnd)),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	summary := in.Statistics.Summary

	sectionTitle(pdf, "1. Executive Summary")
	kv(pdf, "Total Analyses", fmt.Sprintf("%d", summary.TotalAnalyses))
	kv(pdf, "Phishing Detected", fmt.Sprintf("%d (%.2f%%)", summary.PhishingDetected, summary.PhishingPercentage))
	kv(pdf, "Safe URLs", fmt.Sprintf("%d", summary.SafeURLs))
	kv(pdf, "Average Risk Score", fmt.Sprintf("%.2f", summary.AvgRiskScore))
	pdf.Ln(2)

	sectionTitle(pdf, "2. Risk Distribution")
	barChart(pdf, []bar{
		{label: "Low (<40)", value: summary.RiskDistribution.Low, r: 46, g: 160, b: 67},
		{label: "Medium (40-69)", value: summary.RiskDistribution.Medium, r: 219, g: 171, b: 9},
		{label: "High (>=70)", value: summary.RiskDistribution.High, r: 207, g: 34, b: 46},
	})

	sectionTitle(pdf, "3. Confidence Distribution")
	barChart(pdf, []bar{
		{label: "Low", value: in.Statistics.ConfidenceDistribution.Low, r: 110, g: 119, b: 129},
		{label: "Medium", value: in.Statistics.ConfidenceDistribution.Medium, r: 9, g: 105, b: 218},
		{label: "High", value: in.Statistics.ConfidenceDistribution.High, r: 130, g: 80, b: 223},
	})

	sectionTitle(pdf, "4. Detection Sources")
	if len(in.Statistics.SourcesUsage) == 0 {
		emptyNote(pdf)
	} else {
		for _, source := range sortedSources(in.Statistics.SourcesUsage) {
			kv(pdf, source, fmt.Sprintf("%d", in.Statistics.SourcesUsage[source]))
		}
	}
	pdf.Ln(2)

	sectionTitle(pdf, "5. Daily Analysis Counts")
	if len(in.DailyCounts) == 0 {
		emptyNote(pdf)
	} else {
		bars := make([]bar, 0, len(in.DailyCounts))
		for _, dc := range in.DailyCounts {
			bars = append(bars, bar{label: dc.Date, value: dc.Count, r: 9, g: 105, b: 218})
		}
		barChart(pdf, bars)
	}

	sectionTitle(pdf, "6. Recent Analyses")
	recentTable(pdf, in.Records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("could not render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func formatPeriod(start, end *time.Time) string {
	from, to := "beginning", "now"
	if start != nil {
		from = start.Format("2006-01-02")
	}
	if end != nil {
		to = end.Format("2006-01-02")
	}

	return from + " to " + to
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)
}

func kv(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(50, 5.2, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 5.2, value, "", 1, "L", false, 0, "")
}

func emptyNote(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, "(no data)", "", 1, "L", false, 0, "")
}

type bar struct {
	label   string
	value   int
	r, g, b int
}

// barChart draws horizontal bars scaled to the largest value. gofpdf has no
// chart primitives, so the bars are plain filled rectangles.
func barChart(pdf *gofpdf.Fpdf, bars []bar) {
	maxVal := 0
	for _, b := range bars {
		if b.value > maxVal {
			maxVal = b.value
		}
	}

	const maxWidth = 110.0
	for _, b := range bars {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(34, 5.5, b.label, "", 0, "L", false, 0, "")

		width := 0.0
		if maxVal > 0 {
			width = maxWidth * float64(b.value) / float64(maxVal)
		}
		pdf.SetFillColor(b.r, b.g, b.b)
		pdf.CellFormat(width, 4.5, "", "", 0, "L", true, 0, "")
		pdf.CellFormat(0, 5.5, fmt.Sprintf(" %d", b.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func recentTable(pdf *gofpdf.Fpdf, records []domain.AnalysisRecord) {
	if len(records) == 0 {
		emptyNote(pdf)

		return
	}
	if len(records) > maxRecentRows {
		records = records[:maxRecentRows]
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(86, 6, "URL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(22, 6, "Verdict", "1", 0, "C", true, 0, "")
	pdf.CellFormat(16, 6, "Risk", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 6, "Confidence", "1", 0, "C", true, 0, "")
	pdf.CellFormat(34, 6, "Date", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range records {
		verdict := "safe"
		if rec.IsPhishing {
			verdict = "phishing"
		}

		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(86, 5.5, truncate(rec.URL, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 5.5, verdict, "1", 0, "C", false, 0, "")
		pdf.CellFormat(16, 5.5, fmt.Sprintf("%d", rec.RiskScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 5.5, string(rec.ConfidenceLevel), "1", 0, "C", false, 0, "")
		pdf.CellFormat(34, 5.5, rec.AnalysisDate.Format("2006-01-02 15:04"), "1", 1, "C", false, 0, "")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n-3] + "..."
}

func sortedSources(usage domain.SourcesUsage) []string {
	out := make([]string, 0, len(usage))
	for source := range usage {
		out = append(out, source)
	}
	// highest usage first, name breaks ties
	sort.Slice(out, func(i, j int) bool {
		if usage[out[i]] != usage[out[j]] {
			return usage[out[i]] > usage[out[j]]
		}

		return out[i] < out[j]
	})

	return out
}
