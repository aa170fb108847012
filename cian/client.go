package cian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

// NewClient builds a provider client with bounded retries and a local rate
// limit. The provider meters API keys aggressively; the limiter keeps a
// burst of console activity from burning the quota.
func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &Client{
		key:     apiKey,
		baseURL: "https://public-api.cian.ru",
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		http:    rc,
	}
}

// OrderReport fetches the current order report: every offer the provider
// knows under this account, with its moderation/publication status.
func (c *Client) OrderReport(ctx context.Context) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/get-order/", c.baseURL)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("cian error %d: %v", resp.StatusCode, body)
	}
	return readAllLimit(resp.Body, 4<<20) // 4MB guard
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
