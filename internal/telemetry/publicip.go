package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ipLookupTimeout keeps the IP lookup from ever stalling the pipeline.
const ipLookupTimeout = 1 * time.Second

// defaultIPServiceURL is a plain-text "what is my IP" service.
const defaultIPServiceURL = "https://icanhazip.com/"

// IPResolver resolves the machine's public IP address.
type IPResolver interface {
	PublicIP(ctx context.Context) (string, error)
}

// HTTPIP resolves the public IP from a plain-text lookup service.
type HTTPIP struct {
	// URL overrides the lookup service; empty means the default.
	URL string
	// Client overrides the HTTP client; nil means a 1-second-timeout
	// default.
	Client *http.Client
}

// PublicIP fetches and trims the service response.
func (h *HTTPIP) PublicIP(ctx context.Context) (string, error) {
	url := h.URL
	if url == "" {
		url = defaultIPServiceURL
	}
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: ipLookupTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build ip lookup request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("read ip lookup response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}
