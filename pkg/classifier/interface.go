// Package classifier defines the interface and result types used to submit
// URLs to the external classification workflow and normalize its answers.
package classifier

import (
	"context"
	"phishmetrics/pkg/domain"
)

// Status tags a per-URL classification result as success or error.
type Status string

const (
	// StatusSuccess marks a result carrying classification data.
	StatusSuccess Status = "success"
	// StatusError marks a result carrying a failure message.
	StatusError Status = "error"
)

// Result is the uniform shape every classification attempt collapses into:
// either Data is set (success) or Error holds a descriptive message
// (failure). Failures are terminal for the URL; nothing retries them.
type Result struct {
	URL    string                 `json:"url"`
	Status Status                 `json:"status"`
	Data   *domain.AnalysisRecord `json:"data,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// Succeeded reports whether the result carries classification data.
func (r Result) Succeeded() bool { return r.Status == StatusSuccess }

// BulkResult accumulates the per-URL outcomes of a batch, in submission
// order, together with success and failure counts.
type BulkResult struct {
	TotalURLs  int      `json:"total_urls"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// Append adds one outcome and updates the counts.
func (b *BulkResult) Append(r Result) {
	b.TotalURLs++
	if r.Succeeded() {
		b.Successful++
	} else {
		b.Failed++
	}
	b.Results = append(b.Results, r)
}

// Client is the abstraction for the external classification engine.
// Implementations submit one URL at a time and block until the engine
// answers or the bounded wait elapses.
type Client interface {
	// Classify sends the URL to the classification endpoint and returns the
	// decoded analysis record. A timeout is reported as serrors.ErrTimeout, any
	// other upstream failure as serrors.ErrUpstream; both are non-fatal to the
	// caller.
	Classify(ctx context.Context, URL string) (*domain.AnalysisRecord, error)
}
