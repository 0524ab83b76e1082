package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taffe/snackindex/pkg/config"
)

func newTestRedditClient(t *testing.T, server *httptest.Server) *RedditClient {
	t.Helper()
	client, err := NewRedditClient(&config.CollectorConfig{
		RedditClientID:     "id",
		RedditClientSecret: "secret",
		RedditUserAgent:    "test-agent",
		Subreddits:         "snacks+food",
		SearchLimit:        20,
	})
	if err != nil {
		t.Fatalf("NewRedditClient: %v", err)
	}
	client.authURL = server.URL + "/api/v1/access_token"
	client.apiURL = server.URL
	return client
}

func TestRedditSearch(t *testing.T) {
	now := time.Now().UTC()
	recent := now.Add(-time.Hour).Unix()
	stale := now.Add(-48 * time.Hour).Unix()

	var tokenRequests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/access_token":
			tokenRequests++
			user, _, ok := r.BasicAuth()
			if !ok || user != "id" {
				t.Errorf("token request missing basic auth")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "tok", "expires_in": 3600}`))
		case "/r/snacks+food/search":
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q, want Bearer tok", got)
			}
			if got := r.Header.Get("User-Agent"); got != "test-agent" {
				t.Errorf("User-Agent = %q, want test-agent", got)
			}
			if got := r.URL.Query().Get("q"); got != `"Takis"` {
				t.Errorf("q = %s, want %q", got, `"Takis"`)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"data": {"children": [
				{"data": {"title": "Takis are great", "selftext": "so spicy", "subreddit": "snacks", "permalink": "/r/snacks/1", "created_utc": %d}},
				{"data": {"title": "old post", "subreddit": "snacks", "permalink": "/r/snacks/2", "created_utc": %d}}
			]}}`, recent, stale)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestRedditClient(t, server)
	since := now.Add(-24 * time.Hour)

	mentions, err := client.Search(context.Background(), `"Takis"`, since)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention inside the window, got %d", len(mentions))
	}
	m := mentions[0]
	if m.Source != SourceRedditSubmission {
		t.Errorf("Source = %q, want %q", m.Source, SourceRedditSubmission)
	}
	if m.SourceName != "r/snacks" {
		t.Errorf("SourceName = %q, want r/snacks", m.SourceName)
	}
	if m.Content != "Takis are great so spicy" {
		t.Errorf("Content = %q", m.Content)
	}
	if m.URL != "https://www.reddit.com/r/snacks/1" {
		t.Errorf("URL = %q", m.URL)
	}

	// second search reuses the cached token
	if _, err := client.Search(context.Background(), `"Takis"`, since); err != nil {
		t.Fatalf("second Search: %v", err)
	}
	if tokenRequests != 1 {
		t.Errorf("token requests = %d, want 1", tokenRequests)
	}
}

func TestNewsSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/everything" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "key" {
			t.Errorf("X-Api-Key = %q, want key", got)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("language = %q, want en", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "articles": [
			{"source": {"name": "Food Weekly"}, "title": "New flavor drops",
			 "description": "A hit", "url": "https://news.example/1",
			 "publishedAt": "2026-02-01T12:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client, err := NewNewsClient("key", 20)
	if err != nil {
		t.Fatalf("NewNewsClient: %v", err)
	}
	client.baseURL = server.URL

	mentions, err := client.Search(context.Background(), "(\"Takis\")", time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected 1 article, got %d", len(mentions))
	}
	if mentions[0].Source != SourceNewsAPI {
		t.Errorf("Source = %q, want %q", mentions[0].Source, SourceNewsAPI)
	}
	if mentions[0].SourceName != "Food Weekly" {
		t.Errorf("SourceName = %q, want Food Weekly", mentions[0].SourceName)
	}
	if mentions[0].Content != "New flavor drops A hit" {
		t.Errorf("Content = %q", mentions[0].Content)
	}
}

func TestFinnhubQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "PEP" {
			t.Errorf("symbol = %q, want PEP", got)
		}
		if got := r.URL.Query().Get("token"); got != "key" {
			t.Errorf("token = %q, want key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c": 171.25, "h": 172.0, "l": 170.1}`))
	}))
	defer server.Close()

	client, err := NewFinnhubClient("key")
	if err != nil {
		t.Fatalf("NewFinnhubClient: %v", err)
	}
	client.baseURL = server.URL

	price, err := client.Quote(context.Background(), "PEP")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if price != 171.25 {
		t.Errorf("price = %v, want 171.25", price)
	}
}

func TestTrendsInterestScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trends/api/explore":
			w.Write([]byte(")]}'\n" + `{"widgets": [
				{"id": "TIMESERIES", "token": "tok123", "request": {"time": "now 1-d"}},
				{"id": "RELATED_QUERIES", "token": "other"}
			]}`))
		case "/trends/api/widgetdata/multiline":
			if got := r.URL.Query().Get("token"); got != "tok123" {
				t.Errorf("token = %q, want tok123", got)
			}
			w.Write([]byte(")]}',\n" + `{"default": {"timelineData": [
				{"value": [10, 20]},
				{"value": [30, 50]}
			]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewTrendsClient()
	client.baseURL = server.URL

	score, err := client.InterestScore(context.Background(), []string{"Takis", "takis chips"})
	if err != nil {
		t.Fatalf("InterestScore: %v", err)
	}
	// latest point, averaged across terms
	if score != 40 {
		t.Errorf("score = %v, want 40", score)
	}
}

func TestTrendsRetriesOnRateLimit(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTrendsClient()
	client.baseURL = server.URL
	client.retryDelay = time.Millisecond

	if _, err := client.InterestScore(context.Background(), []string{"Takis"}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != trendsMaxRetries {
		t.Errorf("attempts = %d, want %d", attempts, trendsMaxRetries)
	}
}
