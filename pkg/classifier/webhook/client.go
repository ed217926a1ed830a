// Package webhook provides a classifier.Client implementation backed by the
// workflow engine's HTTP webhook endpoint.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"phishmetrics/pkg/classifier"
	"phishmetrics/pkg/domain"
	"phishmetrics/pkg/serrors"
	"strings"
	"time"
)

// DefaultTimeout is the bounded wait for one classification round trip. The
// workflow engine resolves several threat feeds per URL, so the bound is
// deliberately generous.
const DefaultTimeout = 60 * time.Second

// Client talks to the classification webhook and fulfills the
// classifier.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client  // httpClient performs requests to the webhook
	webhookURL string        // webhookURL is the workflow engine endpoint
	timeout    time.Duration // timeout bounds a single classification
}

// New constructs a Client that posts URLs to the given webhook endpoint with
// the provided http.Client. A non-positive timeout falls back to
// DefaultTimeout.
func New(httpClient *http.Client, webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		webhookURL: webhookURL,
		timeout:    timeout,
	}
}

// Classify submits the URL to the workflow webhook and decodes the returned
// analysis record. Timeouts map to serrors.ErrTimeout with a message naming
// the bound; any non-2xx answer maps to serrors.ErrUpstream carrying the
// status and body.
func (c *Client) Classify(ctx context.Context, URL string) (*domain.AnalysisRecord, error) {
	type classifyReq struct {
		URL string `json:"url"`
	}
	bodyBytes, err := json.Marshal(classifyReq{URL: URL})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not marshal request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.webhookURL,
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, serrors.With(serrors.ErrTimeout, "request timeout (>%s)", c.timeout)
		}

		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, serrors.With(serrors.ErrTimeout, "request timeout (>%s)", c.timeout)
		}

		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUpstream, "HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	// successful
	var record domain.AnalysisRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not decode response")
	}
	if record.URL == "" {
		record.URL = URL
	}

	return &record, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// Ensure Client conforms to the classifier.Client interface at compile time.
var _ classifier.Client = (*Client)(nil)
