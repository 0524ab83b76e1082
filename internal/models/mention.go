package models

import (
	"time"
)

// Mention represents a single social or news item referencing a snack
type Mention struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SnackID        int64     `gorm:"not null;column:snack_id" json:"snack_id"`
	Source         string    `gorm:"type:varchar(64);column:source" json:"source"`
	SourceName     string    `gorm:"type:varchar(255);column:source_name" json:"source_name"`
	Content        string    `gorm:"type:text;column:content" json:"content"`
	URL            string    `gorm:"type:text;column:url" json:"url"`
	SentimentScore float64   `gorm:"column:sentiment_score" json:"sentiment_score"`
	PublishedAt    time.Time `gorm:"not null;column:published_at" json:"published_at"`

	// Relationships
	Snack *Snack `gorm:"foreignKey:SnackID;references:ID" json:"snacks,omitempty"`
}

// TableName specifies the table name for Mention
func (Mention) TableName() string {
	return "snack_mentions"
}
