package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"domainshop/pkg/metrics"
	"domainshop/pkg/serrors"
)

// DefaultTimeout bounds a single delivery.
const DefaultTimeout = 10 * time.Second

// Client posts payloads over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	metrics    *metrics.Outbound
}

// Ensure Client conforms to the Poster interface at compile time.
var _ Poster = (*Client)(nil)

// New constructs a Client using httpClient. A non-positive timeout selects
// DefaultTimeout.
func New(httpClient *http.Client, timeout time.Duration, m *metrics.Outbound) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{httpClient: httpClient, timeout: timeout, metrics: m}
}

// Post marshals payload as JSON and posts it to url. Any non-2xx reply is an
// ErrTransport error.
func (c *Client) Post(ctx context.Context, url string, payload any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "delivered"
		if err != nil {
			outcome = "failed"
		}
		c.metrics.Observe("post", outcome, time.Since(start))
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return serrors.Wrap(serrors.ErrTransport, err, "could not send webhook")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serrors.With(serrors.ErrTransport, "webhook replied %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return nil
}
