package scoring

import (
	"testing"
	"time"

	"github.com/taffe/snackindex/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name     string
		metric   *models.DailyMetric
		expected float64
	}{
		{"nil metric", nil, 0},
		{"empty metric", &models.DailyMetric{}, 0},
		{
			"all fields zero",
			&models.DailyMetric{
				GoogleTrendsScore:  f64(0),
				RedditMentionCount: i64(0),
				AvgRedditSentiment: f64(0),
				NewsArticleCount:   i64(0),
				AvgNewsSentiment:   f64(0),
			},
			0,
		},
		{
			"worked example rounds to one decimal",
			&models.DailyMetric{
				GoogleTrendsScore:  f64(80),
				RedditMentionCount: i64(10),
				AvgRedditSentiment: f64(0.5),
				NewsArticleCount:   i64(5),
				AvgNewsSentiment:   f64(0.2),
			},
			// 0.4*80 + 0.3*(5+0.25) + 0.3*(2.5+0.1) = 34.355
			34.4,
		},
		{
			"trends only",
			&models.DailyMetric{GoogleTrendsScore: f64(50)},
			20,
		},
		{
			"mention counts are not normalized",
			&models.DailyMetric{RedditMentionCount: i64(200)},
			30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallScore(tt.metric); got != tt.expected {
				t.Errorf("OverallScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		decimals  int
		expected  float64
	}{
		{"ten percent up", 110, 100, 1, 10.0},
		{"ten percent down", 90, 100, 2, -10.00},
		{"zero previous", 50, 0, 1, 0},
		{"zero current", 0, 50, 1, 0},
		{"both zero", 0, 0, 1, 0},
		{"one decimal rounding", 61, 47, 1, 29.8},
		{"two decimal rounding", 103.5, 101.2, 2, 2.27},
		// -2.5 tenths is an exact tie; halves round toward positive infinity
		{"negative tie rounds up", 399, 400, 1, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.current, tt.previous, tt.decimals); got != tt.expected {
				t.Errorf("PercentChange(%v, %v, %d) = %v, want %v",
					tt.current, tt.previous, tt.decimals, got, tt.expected)
			}
		})
	}
}

func metricRow(snackID int64, date string, trends float64, stock *float64) models.DailyMetric {
	return models.DailyMetric{
		SnackID:           snackID,
		Date:              day(date),
		GoogleTrendsScore: f64(trends),
		StockClosePrice:   stock,
		Snack: &models.Snack{
			ID:      snackID,
			Name:    "snack",
			Company: &models.Company{Name: "company"},
		},
	}
}

func TestBuildSummariesGroupsLatestAndPrevious(t *testing.T) {
	// Rows ordered date descending, two snacks with two days each
	rows := []models.DailyMetric{
		metricRow(1, "2026-02-02", 60, f64(110)),
		metricRow(2, "2026-02-02", 40, nil),
		metricRow(1, "2026-02-01", 50, f64(100)),
		metricRow(2, "2026-02-01", 80, nil),
	}

	summaries := BuildSummaries(rows)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	// Snack 1 has the higher latest score (60*0.4 vs 40*0.4)
	first := summaries[0]
	if first.SnackID != 1 {
		t.Fatalf("expected snack 1 ranked first, got %d", first.SnackID)
	}
	if first.OverallScore != 24.0 {
		t.Errorf("OverallScore = %v, want 24.0", first.OverallScore)
	}
	if first.TrendsChange != 20.0 {
		t.Errorf("TrendsChange = %v, want 20.0", first.TrendsChange)
	}
	if first.StockChange != 10.0 {
		t.Errorf("StockChange = %v, want 10.0", first.StockChange)
	}

	second := summaries[1]
	if second.SnackID != 2 {
		t.Fatalf("expected snack 2 ranked second, got %d", second.SnackID)
	}
	if second.TrendsChange != -50.0 {
		t.Errorf("TrendsChange = %v, want -50.0", second.TrendsChange)
	}
	if second.StockChange != 0 {
		t.Errorf("StockChange without prices = %v, want 0", second.StockChange)
	}
}

func TestBuildSummariesStableOnTies(t *testing.T) {
	// Three snacks with identical scores must keep grouped order
	rows := []models.DailyMetric{
		metricRow(3, "2026-02-02", 10, nil),
		metricRow(1, "2026-02-02", 10, nil),
		metricRow(2, "2026-02-02", 10, nil),
	}

	summaries := BuildSummaries(rows)
	want := []int64{3, 1, 2}
	for i, id := range want {
		if summaries[i].SnackID != id {
			t.Errorf("position %d: got snack %d, want %d", i, summaries[i].SnackID, id)
		}
	}
}

func TestBuildSummariesSingleDay(t *testing.T) {
	// No previous row means both change fields are zero
	rows := []models.DailyMetric{
		metricRow(1, "2026-02-02", 60, f64(110)),
	}

	summaries := BuildSummaries(rows)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].TrendsChange != 0 || summaries[0].StockChange != 0 {
		t.Errorf("changes without previous row = (%v, %v), want (0, 0)",
			summaries[0].TrendsChange, summaries[0].StockChange)
	}
}

func TestBuildSummariesEmpty(t *testing.T) {
	summaries := BuildSummaries(nil)
	if len(summaries) != 0 {
		t.Errorf("expected empty result, got %d summaries", len(summaries))
	}
}

func TestBuildSummariesJoinFields(t *testing.T) {
	ticker := "MDLZ"
	exchange := "NASDAQ"
	row := metricRow(1, "2026-02-02", 60, nil)
	row.Snack = &models.Snack{
		ID:   1,
		Name: "Oreo",
		Company: &models.Company{
			Name:          "Mondelez",
			StockTicker:   &ticker,
			StockExchange: &exchange,
		},
	}

	summaries := BuildSummaries([]models.DailyMetric{row})
	s := summaries[0]
	if s.SnackName != "Oreo" || s.CompanyName != "Mondelez" {
		t.Errorf("join fields = (%q, %q), want (Oreo, Mondelez)", s.SnackName, s.CompanyName)
	}
	if s.StockTicker == nil || *s.StockTicker != "MDLZ" {
		t.Errorf("StockTicker not carried through")
	}
	if s.StockExchange == nil || *s.StockExchange != "NASDAQ" {
		t.Errorf("StockExchange not carried through")
	}
}
