package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taffe/snackindex/pkg/config"
	"github.com/taffe/snackindex/pkg/logging"
)

const (
	redditAuthURL = "https://www.reddit.com/api/v1/access_token"
	redditAPIURL  = "https://oauth.reddit.com"

	// Mentions carry this label so readers can tell post types apart
	SourceRedditSubmission = "Reddit Submission"
)

// RedditClient searches subreddits for snack mentions using the
// application-only OAuth flow
type RedditClient struct {
	authURL    string
	apiURL     string
	clientID   string
	secret     string
	userAgent  string
	subreddits string
	limit      int

	httpClient *http.Client
	logger     *zap.Logger

	token       string
	tokenExpiry time.Time
}

// NewRedditClient creates a new Reddit search client
func NewRedditClient(cfg *config.CollectorConfig) (*RedditClient, error) {
	if cfg.RedditClientID == "" || cfg.RedditClientSecret == "" {
		return nil, fmt.Errorf("reddit_client_id and reddit_client_secret are required")
	}
	return &RedditClient{
		authURL:    redditAuthURL,
		apiURL:     redditAPIURL,
		clientID:   cfg.RedditClientID,
		secret:     cfg.RedditClientSecret,
		userAgent:  cfg.RedditUserAgent,
		subreddits: cfg.Subreddits,
		limit:      cfg.SearchLimit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.WithComponent("reddit-client"),
	}, nil
}

// Search finds submissions matching the query across the configured
// subreddits, keeping only those published at or after since
func (c *RedditClient) Search(ctx context.Context, query string, since time.Time) ([]RawMention, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "new")
	params.Set("restrict_sr", "1")
	params.Set("t", "day")
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	endpoint := fmt.Sprintf("%s/r/%s/search?%s", c.apiURL, c.subreddits, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Source: "reddit", StatusCode: resp.StatusCode}
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					Title      string  `json:"title"`
					Selftext   string  `json:"selftext"`
					Subreddit  string  `json:"subreddit"`
					Permalink  string  `json:"permalink"`
					CreatedUTC float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reddit listing: %w", err)
	}

	mentions := make([]RawMention, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		publishedAt := time.Unix(int64(post.CreatedUTC), 0).UTC()
		if publishedAt.Before(since) {
			continue
		}

		content := post.Title
		if post.Selftext != "" {
			content = content + " " + post.Selftext
		}
		mentions = append(mentions, RawMention{
			Source:      SourceRedditSubmission,
			SourceName:  "r/" + post.Subreddit,
			Content:     content,
			URL:         "https://www.reddit.com" + post.Permalink,
			PublishedAt: publishedAt,
		})
	}
	return mentions, nil
}

// accessToken returns a cached application-only token, refreshing it when
// within a minute of expiry
func (c *RedditClient) accessToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create reddit token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reddit token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Reddit token request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", &StatusError{Source: "reddit auth", StatusCode: resp.StatusCode}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal reddit token: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("reddit returned an empty access token")
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.token, nil
}
