// Package client is a typed HTTP client for the snack index API, used by
// dashboard frontends and internal tooling.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// APIError reports a failed API call. Status is 0 when the request never
// reached the server.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"statusCode"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client calls the snack index API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// TrendingSnacks returns the ranked trending list
func (c *Client) TrendingSnacks(ctx context.Context) ([]TrendingSnack, error) {
	var summaries []rankedSummary
	if err := c.get(ctx, "/snacks/trending", nil, &summaries); err != nil {
		return nil, err
	}
	return toTrendingSnacks(summaries), nil
}

// AllSnacks returns the full ranked list
func (c *Client) AllSnacks(ctx context.Context) ([]TrendingSnack, error) {
	var summaries []rankedSummary
	if err := c.get(ctx, "/snacks/all", nil, &summaries); err != nil {
		return nil, err
	}
	return toTrendingSnacks(summaries), nil
}

// SearchSnacks returns ranked summaries for snacks matching the query
func (c *Client) SearchSnacks(ctx context.Context, query string) ([]TrendingSnack, error) {
	var summaries []rankedSummary
	params := url.Values{"q": {query}}
	if err := c.get(ctx, "/snacks/search", params, &summaries); err != nil {
		return nil, err
	}
	return toTrendingSnacks(summaries), nil
}

// Snacks returns the raw snack catalog
func (c *Client) Snacks(ctx context.Context) ([]Snack, error) {
	var snacks []Snack
	if err := c.get(ctx, "/snacks", nil, &snacks); err != nil {
		return nil, err
	}
	return snacks, nil
}

// Snack returns one snack by id
func (c *Client) Snack(ctx context.Context, id int64) (*Snack, error) {
	var snack Snack
	if err := c.get(ctx, fmt.Sprintf("/snacks/%d", id), nil, &snack); err != nil {
		return nil, err
	}
	return &snack, nil
}

// Companies returns the company catalog
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := c.get(ctx, "/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// SnackMetrics returns up to days recent metric rows for a snack
func (c *Client) SnackMetrics(ctx context.Context, id int64, days int) ([]DailyMetric, error) {
	var metrics []DailyMetric
	params := url.Values{}
	if days > 0 {
		params.Set("days", fmt.Sprintf("%d", days))
	}
	if err := c.get(ctx, fmt.Sprintf("/snacks/%d/metrics", id), params, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

// SnackDetail returns the assembled detail view for a snack
func (c *Client) SnackDetail(ctx context.Context, id int64) (*Detail, error) {
	var detail Detail
	if err := c.get(ctx, fmt.Sprintf("/snacks/%d/detail", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Mentions returns recent mentions across all snacks
func (c *Client) Mentions(ctx context.Context, limit int) ([]Mention, error) {
	return c.mentions(ctx, "/mentions", limitParams(limit))
}

// RecentMentions returns mentions from the last days days
func (c *Client) RecentMentions(ctx context.Context, days, limit int) ([]Mention, error) {
	params := limitParams(limit)
	if days > 0 {
		params.Set("days", fmt.Sprintf("%d", days))
	}
	return c.mentions(ctx, "/mentions/recent", params)
}

// SnackMentions returns mentions for one snack
func (c *Client) SnackMentions(ctx context.Context, id int64, limit int) ([]Mention, error) {
	return c.mentions(ctx, fmt.Sprintf("/mentions/snack/%d", id), limitParams(limit))
}

// MentionsBySource returns mentions with an exact source label
func (c *Client) MentionsBySource(ctx context.Context, source string, limit int) ([]Mention, error) {
	return c.mentions(ctx, "/mentions/source/"+url.PathEscape(source), limitParams(limit))
}

func (c *Client) mentions(ctx context.Context, path string, params url.Values) ([]Mention, error) {
	var mentions []Mention
	if err := c.get(ctx, path, params, &mentions); err != nil {
		return nil, err
	}
	return mentions, nil
}

func limitParams(limit int) url.Values {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Error bodies carry {"message": ...}; fall back to the status text
		var body struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return nil
}
