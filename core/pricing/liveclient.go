// Package pricing - HTTP live pricing client
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"finopsguard/core/types"
)

// HTTPLiveClient fetches live prices from a pricing service over HTTP.
// One client serves one cloud; the resolver owns the cascade and caching,
// this client owns only the wire call.
type HTTPLiveClient struct {
	cloud      types.Cloud
	baseURL    string
	httpClient *http.Client
}

// NewHTTPLiveClient creates a live client for one cloud.
// A nil httpClient falls back to http.DefaultClient; per-call timeouts
// are applied by the resolver through the context.
func NewHTTPLiveClient(cloud types.Cloud, baseURL string, httpClient *http.Client) *HTTPLiveClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPLiveClient{
		cloud:      cloud,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Cloud returns the provider this client serves
func (c *HTTPLiveClient) Cloud() types.Cloud {
	return c.cloud
}

type livePriceResponse struct {
	HourlyPrice string `json:"hourly_price"`
	Currency    string `json:"currency"`
}

// FetchLivePrice calls GET {base}/v1/{cloud}/price?sku=&region=
func (c *HTTPLiveClient) FetchLivePrice(ctx context.Context, sku, region string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v1/%s/price?sku=%s&region=%s",
		c.baseURL, c.cloud, url.QueryEscape(sku), url.QueryEscape(region))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("pricing API returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed livePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, fmt.Errorf("decoding pricing response: %w", err)
	}

	price, err := decimal.NewFromString(parsed.HourlyPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", parsed.HourlyPrice, err)
	}
	return price, nil
}
