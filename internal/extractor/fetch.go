package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"live-monitor/internal/platform/httpclient"
)

// maxBody caps how much of an upstream response is read.
const maxBody = 4 << 20

// Fetch GETs url and returns the body. Non-2xx answers wrap ErrUnexpectedStatus.
func Fetch(ctx context.Context, c *httpclient.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FetchJSON GETs url and decodes the JSON body into v.
func FetchJSON(ctx context.Context, c *httpclient.Client, url string, v any) error {
	body, err := Fetch(ctx, c, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
