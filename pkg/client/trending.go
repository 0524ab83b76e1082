package client

// TrendingSnack is the card-sized view of a ranked snack
type TrendingSnack struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Score    float64 `json:"score"`
	Change   float64 `json:"change"`
	Trending string  `json:"trending"`
}

// cardPalette cycles across snack cards so neighbors get distinct colors
var cardPalette = []string{
	"#F97316",
	"#8B5CF6",
	"#10B981",
	"#EF4444",
	"#3B82F6",
	"#F59E0B",
}

// CardColor returns a stable display color for a snack id
func CardColor(id int64) string {
	idx := (id - 1) % int64(len(cardPalette))
	if idx < 0 {
		idx += int64(len(cardPalette))
	}
	return cardPalette[idx]
}

// toTrendingSnacks maps ranked summaries onto card views. A flat trend
// counts as up.
func toTrendingSnacks(summaries []rankedSummary) []TrendingSnack {
	snacks := make([]TrendingSnack, 0, len(summaries))
	for _, s := range summaries {
		trending := "down"
		if s.TrendsChange >= 0 {
			trending = "up"
		}
		snacks = append(snacks, TrendingSnack{
			ID:       s.SnackID,
			Name:     s.SnackName,
			Brand:    s.CompanyName,
			Score:    s.OverallScore,
			Change:   s.TrendsChange,
			Trending: trending,
		})
	}
	return snacks
}
