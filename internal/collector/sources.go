package collector

import (
	"context"
	"fmt"
	"time"
)

// RawMention is a single item returned by a mention source before
// sentiment scoring
type RawMention struct {
	Source      string
	SourceName  string
	Content     string
	URL         string
	PublishedAt time.Time
}

// TrendsSource reports search interest for a set of terms
type TrendsSource interface {
	InterestScore(ctx context.Context, terms []string) (float64, error)
}

// MentionSource finds recent items matching a query
type MentionSource interface {
	Search(ctx context.Context, query string, since time.Time) ([]RawMention, error)
}

// QuoteSource returns the current price for a stock ticker
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (float64, error)
}

// StatusError reports a non-2xx response from an upstream API
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d", e.Source, e.StatusCode)
}
