package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/taffe/snackindex/pkg/logging"
)

const (
	newsAPIBaseURL = "https://newsapi.org"

	SourceNewsAPI = "NewsAPI"
)

// NewsClient searches news coverage through the NewsAPI everything endpoint
type NewsClient struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNewsClient creates a new NewsAPI client
func NewNewsClient(apiKey string, pageSize int) (*NewsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("news_api_key is required")
	}
	return &NewsClient{
		baseURL:    newsAPIBaseURL,
		apiKey:     apiKey,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.WithComponent("news-client"),
	}, nil
}

// Search finds English-language articles matching the query published at or
// after since
func (c *NewsClient) Search(ctx context.Context, query string, since time.Time) ([]RawMention, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("from", since.UTC().Format(time.RFC3339))
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Source: "newsapi", StatusCode: resp.StatusCode}
	}

	var response struct {
		Status   string `json:"status"`
		Articles []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			Title       string    `json:"title"`
			Description string    `json:"description"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal news response: %w", err)
	}
	if response.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q", response.Status)
	}

	mentions := make([]RawMention, 0, len(response.Articles))
	for _, article := range response.Articles {
		content := article.Title
		if article.Description != "" {
			content = content + " " + article.Description
		}
		mentions = append(mentions, RawMention{
			Source:      SourceNewsAPI,
			SourceName:  article.Source.Name,
			Content:     content,
			URL:         article.URL,
			PublishedAt: article.PublishedAt,
		})
	}
	return mentions, nil
}
