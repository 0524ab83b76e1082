package models

import (
	"time"
)

// DailyMetric holds one day of collected popularity metrics for a snack.
// Rows are written once per (snack, day) by the collector and are read-only
// everywhere else. All metric columns are nullable; a missing value reads as
// zero for scoring purposes.
type DailyMetric struct {
	SnackID            int64     `gorm:"primaryKey;column:snack_id" json:"snack_id"`
	Date               time.Time `gorm:"primaryKey;type:date;column:date" json:"date"`
	GoogleTrendsScore  *float64  `gorm:"column:google_trends_score" json:"google_trends_score"`
	RedditMentionCount *int64    `gorm:"column:reddit_mention_count" json:"reddit_mention_count"`
	AvgRedditSentiment *float64  `gorm:"column:avg_reddit_sentiment" json:"avg_reddit_sentiment"`
	NewsArticleCount   *int64    `gorm:"column:news_article_count" json:"news_article_count"`
	AvgNewsSentiment   *float64  `gorm:"column:avg_news_sentiment" json:"avg_news_sentiment"`
	StockClosePrice    *float64  `gorm:"column:stock_close_price" json:"stock_close_price"`

	// Relationships
	Snack *Snack `gorm:"foreignKey:SnackID;references:ID" json:"snacks,omitempty"`
}

// TableName specifies the table name for DailyMetric
func (DailyMetric) TableName() string {
	return "daily_metrics"
}

// DateString returns the metric date as a calendar day
func (m *DailyMetric) DateString() string {
	return m.Date.Format("2006-01-02")
}
