package scoring

import (
	"fmt"

	"github.com/taffe/snackindex/internal/models"
)

const (
	positiveColor = "#10B981"
	neutralColor  = "#6B7280"
	negativeColor = "#EF4444"
)

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

// BuildDetail assembles the detail view from a snack and its metric rows
// ordered oldest to newest. The latest row is the last element, the previous
// the second-to-last.
func BuildDetail(snack *models.Snack, metricsAsc []models.DailyMetric) *Detail {
	var latest, previous *models.DailyMetric
	if n := len(metricsAsc); n > 0 {
		latest = &metricsAsc[n-1]
		if n > 1 {
			previous = &metricsAsc[n-2]
		}
	}

	timeline := make([]TimelinePoint, 0, len(metricsAsc))
	for i := range metricsAsc {
		timeline = append(timeline, TimelinePoint{
			Date:  metricsAsc[i].DateString(),
			Value: floatOrZero(metricsAsc[i].GoogleTrendsScore),
		})
	}

	// A missing (or zero) sentiment reads as a neutral 0.5. The three
	// buckets do not necessarily sum to 100: the neutral slice is a fixed
	// placeholder pending a real breakdown.
	sentiment := sentimentOrNeutral(latest)
	sentimentData := []SentimentSlice{
		{Type: "Positive", Percentage: roundInt(sentiment * 100), Color: positiveColor},
		{Type: "Neutral", Percentage: 25, Color: neutralColor},
		{Type: "Negative", Percentage: roundInt((1 - sentiment) * 100), Color: negativeColor},
	}

	var latestTrends, prevTrends, prevStock float64
	if latest != nil {
		latestTrends = floatOrZero(latest.GoogleTrendsScore)
	}
	if previous != nil {
		prevTrends = floatOrZero(previous.GoogleTrendsScore)
		prevStock = floatOrZero(previous.StockClosePrice)
	}
	trendsChange := PercentChange(latestTrends, prevTrends, 1)

	trending := "down"
	if trendsChange >= 0 {
		trending = "up"
	}

	detail := &Detail{
		Snack: DetailSnack{
			ID:       snack.ID,
			Name:     snack.Name,
			Score:    OverallScore(latest),
			Change:   trendsChange,
			Trending: trending,
		},
		TimelineData:          timeline,
		SentimentData:         sentimentData,
		NewsArticles:          placeholderArticles(snack.Name),
		OverallSentimentScore: roundInt(sentiment * 10),
	}

	if snack.Company != nil {
		detail.Snack.Brand = snack.Company.Name
		detail.Company = DetailCompany{
			Name:          snack.Company.Name,
			StockTicker:   snack.Company.StockTicker,
			StockExchange: snack.Company.StockExchange,
		}
	}
	if latest != nil {
		detail.Company.CurrentStockPrice = latest.StockClosePrice
		detail.Company.StockChange = PercentChange(floatOrZero(latest.StockClosePrice), prevStock, 2)
	}

	return detail
}

// placeholderArticles stands in for a real news feed integration. The fixed
// entries below are served until that feed exists; replacing this function
// is the integration point.
func placeholderArticles(snackName string) []NewsArticle {
	return []NewsArticle{
		{
			ID:        1,
			Title:     fmt.Sprintf("%s Sales Performance Update", snackName),
			Source:    "Food Industry News",
			Date:      "2 days ago",
			Summary:   "Recent market analysis shows continued performance for this popular snack brand.",
			Sentiment: "positive",
			URL:       "#",
		},
		{
			ID:        2,
			Title:     fmt.Sprintf("Market Trends: %s Consumer Interest", snackName),
			Source:    "Market Analysis",
			Date:      "1 week ago",
			Summary:   "Consumer sentiment analysis reveals ongoing interest in this snack category.",
			Sentiment: "neutral",
			URL:       "#",
		},
	}
}

// sentimentOrNeutral returns the latest reddit sentiment, defaulting to 0.5
// when the row or value is missing or zero
func sentimentOrNeutral(latest *models.DailyMetric) float64 {
	if latest == nil || latest.AvgRedditSentiment == nil || *latest.AvgRedditSentiment == 0 {
		return 0.5
	}
	return *latest.AvgRedditSentiment
}
