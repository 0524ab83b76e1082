package client

import "time"

// Wire shapes mirrored from the API's JSON responses. The client keeps its
// own copies so importers outside this module can name every returned type.

// Company is a snack manufacturer
type Company struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StockTicker   *string `json:"stock_ticker"`
	StockExchange *string `json:"stock_exchange"`
}

// Snack is a tracked snack brand
type Snack struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Company   *Company  `json:"companies,omitempty"`
}

// DailyMetric is one day of collected popularity metrics for a snack
type DailyMetric struct {
	SnackID            int64     `json:"snack_id"`
	Date               time.Time `json:"date"`
	GoogleTrendsScore  *float64  `json:"google_trends_score"`
	RedditMentionCount *int64    `json:"reddit_mention_count"`
	AvgRedditSentiment *float64  `json:"avg_reddit_sentiment"`
	NewsArticleCount   *int64    `json:"news_article_count"`
	AvgNewsSentiment   *float64  `json:"avg_news_sentiment"`
	StockClosePrice    *float64  `json:"stock_close_price"`
}

// Mention is a single social or news item referencing a snack
type Mention struct {
	ID             int64     `json:"id"`
	SnackID        int64     `json:"snack_id"`
	Source         string    `json:"source"`
	SourceName     string    `json:"source_name"`
	Content        string    `json:"content"`
	URL            string    `json:"url"`
	SentimentScore float64   `json:"sentiment_score"`
	PublishedAt    time.Time `json:"published_at"`
	Snack          *Snack    `json:"snacks,omitempty"`
}

// TimelinePoint is one day on the detail chart
type TimelinePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SentimentSlice is one bucket of the sentiment breakdown
type SentimentSlice struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// NewsArticle is a news feed entry on the detail page
type NewsArticle struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	URL       string `json:"url"`
}

// DetailSnack is the snack header block of the detail view
type DetailSnack struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Score    float64 `json:"score"`
	Change   float64 `json:"change"`
	Trending string  `json:"trending"`
}

// DetailCompany is the company and stock block of the detail view
type DetailCompany struct {
	Name              string   `json:"name"`
	StockTicker       *string  `json:"stockTicker"`
	StockExchange     *string  `json:"stockExchange"`
	CurrentStockPrice *float64 `json:"currentStockPrice"`
	StockChange       float64  `json:"stockChange"`
}

// Detail is everything the per-snack detail page renders
type Detail struct {
	Snack                 DetailSnack      `json:"snack"`
	TimelineData          []TimelinePoint  `json:"timelineData"`
	SentimentData         []SentimentSlice `json:"sentimentData"`
	NewsArticles          []NewsArticle    `json:"newsArticles"`
	OverallSentimentScore int              `json:"overallSentimentScore"`
	Company               DetailCompany    `json:"company"`
}

// rankedSummary carries the summary fields the card mapper consumes;
// extra response fields are ignored on decode
type rankedSummary struct {
	SnackID      int64   `json:"snack_id"`
	SnackName    string  `json:"snack_name"`
	CompanyName  string  `json:"company_name"`
	TrendsChange float64 `json:"trends_change"`
	OverallScore float64 `json:"overall_score"`
}
