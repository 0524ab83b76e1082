// Package scoring turns raw per-day metric rows into ranked overall scores
// and period-over-period deltas. It is the single source of truth for the
// formula; both the API server and the dashboard client consume it.
package scoring

import (
	"math"
	"sort"

	"github.com/taffe/snackindex/internal/models"
)

// Source weights for the overall score. Mention counts are deliberately not
// normalized to a 0-100 scale before weighting.
const (
	trendsWeight = 0.4
	redditWeight = 0.3
	newsWeight   = 0.3
)

// Summary is the latest metric row for one snack joined with its snack and
// company plus the derived score and change fields. Recomputed on every
// request, never persisted.
type Summary struct {
	SnackID            int64    `json:"snack_id"`
	SnackName          string   `json:"snack_name"`
	CompanyName        string   `json:"company_name"`
	StockTicker        *string  `json:"stock_ticker"`
	StockExchange      *string  `json:"stock_exchange"`
	CurrentTrendsScore float64  `json:"current_trends_score"`
	TrendsChange       float64  `json:"trends_change"`
	RedditMentions     int64    `json:"reddit_mentions"`
	RedditSentiment    float64  `json:"reddit_sentiment"`
	NewsMentions       int64    `json:"news_mentions"`
	NewsSentiment      float64  `json:"news_sentiment"`
	StockPrice         *float64 `json:"stock_price"`
	StockChange        float64  `json:"stock_change"`
	OverallScore       float64  `json:"overall_score"`
}

// OverallScore computes the weighted score for a single metric row, rounded
// to one decimal place. A nil row or missing field counts as zero.
func OverallScore(m *models.DailyMetric) float64 {
	if m == nil {
		return 0
	}

	googleScore := floatOrZero(m.GoogleTrendsScore) * trendsWeight
	redditScore := (float64(intOrZero(m.RedditMentionCount))*0.5 + floatOrZero(m.AvgRedditSentiment)*0.5) * redditWeight
	newsScore := (float64(intOrZero(m.NewsArticleCount))*0.5 + floatOrZero(m.AvgNewsSentiment)*0.5) * newsWeight

	return round(googleScore+redditScore+newsScore, 1)
}

// PercentChange computes the percentage delta between current and previous,
// rounded to the given number of decimal places. A current or previous value
// of exactly zero reads as missing and yields zero; a true zero is
// indistinguishable from an absent value here, and that quirk is kept.
func PercentChange(current, previous float64, decimals int) float64 {
	if current == 0 || previous == 0 {
		return 0
	}
	return round(((current-previous)/previous)*100, decimals)
}

// BuildSummaries builds one ranked summary per snack from metric rows
// ordered by date descending. The first row seen for a snack is its latest;
// the previous row is the first one found for the same snack with a
// different date. The result is sorted by overall score descending, with
// ties keeping the grouped order.
func BuildSummaries(rows []models.DailyMetric) []Summary {
	if len(rows) == 0 {
		return []Summary{}
	}

	latest := make(map[int64]*models.DailyMetric)
	var order []int64
	for i := range rows {
		if _, seen := latest[rows[i].SnackID]; !seen {
			latest[rows[i].SnackID] = &rows[i]
			order = append(order, rows[i].SnackID)
		}
	}

	summaries := make([]Summary, 0, len(order))
	for _, snackID := range order {
		current := latest[snackID]

		var previous *models.DailyMetric
		for i := range rows {
			if rows[i].SnackID == snackID && !rows[i].Date.Equal(current.Date) {
				previous = &rows[i]
				break
			}
		}

		var prevTrends, prevStock float64
		if previous != nil {
			prevTrends = floatOrZero(previous.GoogleTrendsScore)
			prevStock = floatOrZero(previous.StockClosePrice)
		}

		s := Summary{
			SnackID:            snackID,
			CurrentTrendsScore: floatOrZero(current.GoogleTrendsScore),
			TrendsChange:       PercentChange(floatOrZero(current.GoogleTrendsScore), prevTrends, 1),
			RedditMentions:     intOrZero(current.RedditMentionCount),
			RedditSentiment:    floatOrZero(current.AvgRedditSentiment),
			NewsMentions:       intOrZero(current.NewsArticleCount),
			NewsSentiment:      floatOrZero(current.AvgNewsSentiment),
			StockPrice:         current.StockClosePrice,
			StockChange:        PercentChange(floatOrZero(current.StockClosePrice), prevStock, 2),
			OverallScore:       OverallScore(current),
		}
		if current.Snack != nil {
			s.SnackName = current.Snack.Name
			if current.Snack.Company != nil {
				s.CompanyName = current.Snack.Company.Name
				s.StockTicker = current.Snack.Company.StockTicker
				s.StockExchange = current.Snack.Company.StockExchange
			}
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].OverallScore > summaries[j].OverallScore
	})

	return summaries
}

// round keeps JS Math.round semantics: halves round toward positive
// infinity, so -2.5 tenths becomes -0.2, not -0.3
func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(x*p+0.5) / p
}

// roundInt rounds to the nearest integer with the same tie-break as round
func roundInt(x float64) int {
	return int(math.Floor(x + 0.5))
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
