package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/taffe/snackindex/pkg/logging"
)

const (
	trendsBaseURL    = "https://trends.google.com"
	trendsCategory   = 71 // Food & Drink
	trendsTimeframe  = "now 1-d"
	maxTrendsTerms   = 5
	trendsMaxRetries = 3
)

// TrendsClient fetches search-interest scores from the unofficial Google
// Trends endpoints. The explore call issues a widget token which the
// timeseries call then consumes; both responses carry an anti-hijacking
// prefix that must be stripped before decoding.
type TrendsClient struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewTrendsClient creates a new Google Trends client
func NewTrendsClient() *TrendsClient {
	return &TrendsClient{
		baseURL:    trendsBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retryDelay: 15 * time.Second,
		logger:     logging.WithComponent("trends-client"),
	}
}

type trendsWidget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

// InterestScore returns the latest interest value for the given terms,
// averaged across terms when more than one is supplied. Google caps a
// comparison at five terms, so extras are dropped.
func (c *TrendsClient) InterestScore(ctx context.Context, terms []string) (float64, error) {
	if len(terms) == 0 {
		return 0, nil
	}
	if len(terms) > maxTrendsTerms {
		terms = terms[:maxTrendsTerms]
	}

	delay := c.retryDelay
	var lastErr error
	for attempt := 0; attempt < trendsMaxRetries; attempt++ {
		score, err := c.fetchScore(ctx, terms)
		if err == nil {
			return score, nil
		}
		lastErr = err

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
			return 0, err
		}

		c.logger.Warn("Rate limited by Google Trends, backing off",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay))
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return 0, fmt.Errorf("trends request failed after %d attempts: %w", trendsMaxRetries, lastErr)
}

func (c *TrendsClient) fetchScore(ctx context.Context, terms []string) (float64, error) {
	widget, err := c.explore(ctx, terms)
	if err != nil {
		return 0, err
	}
	return c.timeseries(ctx, widget)
}

// explore registers the comparison and returns the TIMESERIES widget
func (c *TrendsClient) explore(ctx context.Context, terms []string) (*trendsWidget, error) {
	comparisonItems := make([]map[string]interface{}, 0, len(terms))
	for _, term := range terms {
		comparisonItems = append(comparisonItems, map[string]interface{}{
			"keyword": term,
			"geo":     "",
			"time":    trendsTimeframe,
		})
	}
	req := map[string]interface{}{
		"comparisonItem": comparisonItems,
		"category":       trendsCategory,
		"property":       "",
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode explore request: %w", err)
	}

	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	params.Set("req", string(reqJSON))

	body, err := c.get(ctx, "/trends/api/explore", params)
	if err != nil {
		return nil, err
	}

	var response struct {
		Widgets []trendsWidget `json:"widgets"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explore response: %w", err)
	}
	for i := range response.Widgets {
		if response.Widgets[i].ID == "TIMESERIES" {
			return &response.Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("no timeseries widget in explore response")
}

// timeseries fetches interest-over-time data for a widget and returns the
// latest data point averaged across terms
func (c *TrendsClient) timeseries(ctx context.Context, widget *trendsWidget) (float64, error) {
	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	params.Set("req", string(widget.Request))
	params.Set("token", widget.Token)

	body, err := c.get(ctx, "/trends/api/widgetdata/multiline", params)
	if err != nil {
		return 0, err
	}

	var response struct {
		Default struct {
			TimelineData []struct {
				Value []float64 `json:"value"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("failed to unmarshal timeseries response: %w", err)
	}

	timeline := response.Default.TimelineData
	if len(timeline) == 0 {
		return 0, nil
	}
	latest := timeline[len(timeline)-1].Value
	if len(latest) == 0 {
		return 0, nil
	}
	var sum float64
	for _, v := range latest {
		sum += v
	}
	return sum / float64(len(latest)), nil
}

func (c *TrendsClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create trends request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trends request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Source: "trends", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trends response: %w", err)
	}
	return stripJSONPrefix(body), nil
}

// stripJSONPrefix drops the ")]}'," garbage Google prepends to its
// trends API responses
func stripJSONPrefix(body []byte) []byte {
	if idx := bytes.IndexByte(body, '{'); idx > 0 {
		return body[idx:]
	}
	return body
}
