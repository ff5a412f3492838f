package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amsterdam/sensorregister/internal/logging"
)

const component = "feeds"

// Client fetches feed payloads over HTTP.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads and decodes the feature collection of def.
func (c *Client) Fetch(ctx context.Context, def Definition) (FeatureCollection, error) {
	start := time.Now()
	logging.LogRequest(ctx, component, http.MethodGet, def.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, def.URL, nil)
	if err != nil {
		return FeatureCollection{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.LogError(ctx, component, def.Name, err)
		return FeatureCollection{}, fmt.Errorf("fetch feed %s: %w", def.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FeatureCollection{}, fmt.Errorf("fetch feed %s: status %d", def.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FeatureCollection{}, fmt.Errorf("read feed %s: %w", def.Name, err)
	}

	fc, err := Decode(body)
	if err != nil {
		return FeatureCollection{}, fmt.Errorf("feed %s: %w", def.Name, err)
	}

	logging.LogResponse(ctx, component, resp.StatusCode, time.Since(start), len(fc.Features))
	return fc, nil
}
