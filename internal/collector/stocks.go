package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const finnhubBaseURL = "https://finnhub.io"

// FinnhubClient fetches stock quotes from the Finnhub API
type FinnhubClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFinnhubClient creates a new Finnhub quote client
func NewFinnhubClient(apiKey string) (*FinnhubClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("finnhub_api_key is required")
	}
	return &FinnhubClient{
		baseURL:    finnhubBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Quote returns the current price for a ticker. Finnhub reports 0 for
// symbols it does not know.
func (c *FinnhubClient) Quote(ctx context.Context, ticker string) (float64, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/quote?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Source: "finnhub", StatusCode: resp.StatusCode}
	}

	var quote struct {
		Current float64 `json:"c"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return 0, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return quote.Current, nil
}
