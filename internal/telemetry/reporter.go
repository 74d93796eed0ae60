// Package telemetry reports episode summary records to the collector and
// resolves the external metadata (identity, public IP, problem dataset)
// merged into each record. Nothing in this package ever surfaces an error
// to the primary workflow: failures degrade to null fields or logged,
// swallowed transmission errors.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/janindragoonetilleke-oss/codeassist/internal/summary"
)

// episodeSessionPath is the collector route for episode summary records.
const episodeSessionPath = "/event/codeassist/episode"

// reportTimeout bounds one transmission attempt. There is no retry.
const reportTimeout = 2 * time.Second

// Reporter transmits one assembled summary record.
type Reporter interface {
	Report(ctx context.Context, rec *summary.Session) error
}

// Collector is the HTTP Reporter posting records to the telemetry
// collector endpoint. Safe for concurrent use.
type Collector struct {
	url    string
	client *http.Client
}

// NewCollector builds a Collector for the given base URL. If httpClient is
// nil, a default client with the standard report timeout is used.
func NewCollector(baseURL string, httpClient *http.Client) *Collector {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: reportTimeout}
	}
	return &Collector{
		url:    strings.TrimRight(baseURL, "/") + episodeSessionPath,
		client: httpClient,
	}
}

// Report serializes rec as JSON and POSTs it to the collector. A non-2xx
// response is an error; the caller decides whether to surface or swallow.
func (c *Collector) Report(ctx context.Context, rec *summary.Session) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal episode session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build collector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post episode session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
