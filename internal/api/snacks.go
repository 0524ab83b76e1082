package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/cache"
	"github.com/taffe/snackindex/internal/models"
	"github.com/taffe/snackindex/internal/scoring"
	"github.com/taffe/snackindex/pkg/logging"
)

const defaultMetricDays = 30

// Ranked lists change once per collector run, so they tolerate generous TTLs
const (
	allCacheTTL      = 60 * time.Second
	trendingCacheTTL = 300 * time.Second
)

// SnackStore is the snack read surface the handlers depend on
type SnackStore interface {
	List(ctx context.Context) ([]models.Snack, error)
	GetByID(ctx context.Context, id int64) (*models.Snack, error)
	SearchByName(ctx context.Context, query string) ([]models.Snack, error)
}

// MetricStore is the metric read surface the handlers depend on
type MetricStore interface {
	ForSnack(ctx context.Context, snackID int64, days int) ([]models.DailyMetric, error)
	ForSnackAscending(ctx context.Context, snackID int64, limit int) ([]models.DailyMetric, error)
	AllWithSnacks(ctx context.Context) ([]models.DailyMetric, error)
}

// SnackAPI serves the snack endpoints, including the ranked summary lists
type SnackAPI struct {
	snacks  SnackStore
	metrics MetricStore
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewSnackAPI creates a new snack API
func NewSnackAPI(snacks SnackStore, metrics MetricStore, redisCache *cache.Cache) *SnackAPI {
	return &SnackAPI{
		snacks:  snacks,
		metrics: metrics,
		cache:   redisCache,
		logger:  logging.WithComponent("snack-api"),
	}
}

// List handles GET /snacks
func (a *SnackAPI) List(c *gin.Context) {
	snacks, err := a.snacks.List(c.Request.Context())
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, snacks)
}

// Get handles GET /snacks/:id
func (a *SnackAPI) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid snack id")
		return
	}

	snack, err := a.snacks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, snack)
}

// AllWithMetrics handles GET /snacks/all
func (a *SnackAPI) AllWithMetrics(c *gin.Context) {
	summaries, err := a.rankedSummaries(c.Request.Context(), "all", allCacheTTL)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Trending handles GET /snacks/trending. Trending is currently the full
// ranked list; no change filter is applied.
func (a *SnackAPI) Trending(c *gin.Context) {
	summaries, err := a.rankedSummaries(c.Request.Context(), "trending", trendingCacheTTL)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Search handles GET /snacks/search?q=. Name matches are enriched with the
// ranked summaries, filtered down to the matched ids. An empty query or an
// empty match set short-circuits before the ranking query.
func (a *SnackAPI) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, []scoring.Summary{})
		return
	}

	matches, err := a.snacks.SearchByName(c.Request.Context(), query)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	if len(matches) == 0 {
		c.JSON(http.StatusOK, []scoring.Summary{})
		return
	}

	matched := make(map[int64]bool, len(matches))
	for _, snack := range matches {
		matched[snack.ID] = true
	}

	summaries, err := a.rankedSummaries(c.Request.Context(), "all", allCacheTTL)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}

	filtered := make([]scoring.Summary, 0, len(matches))
	for _, summary := range summaries {
		if matched[summary.SnackID] {
			filtered = append(filtered, summary)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

// Metrics handles GET /snacks/:id/metrics?days=
func (a *SnackAPI) Metrics(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid snack id")
		return
	}

	days := defaultMetricDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	metrics, err := a.metrics.ForSnack(c.Request.Context(), id, days)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Detail handles GET /snacks/:id/detail
func (a *SnackAPI) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid snack id")
		return
	}

	ctx := c.Request.Context()
	snack, err := a.snacks.GetByID(ctx, id)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}

	metrics, err := a.metrics.ForSnackAscending(ctx, id, defaultMetricDays)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, scoring.BuildDetail(snack, metrics))
}

// rankedSummaries computes the ranked summary list, served from cache when a
// fresh copy exists
func (a *SnackAPI) rankedSummaries(ctx context.Context, sort string, ttl time.Duration) ([]scoring.Summary, error) {
	key := cache.HashKey("snacks_ranked", sort)

	if a.cache != nil {
		var cached []scoring.Summary
		if err := a.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := a.metrics.AllWithSnacks(ctx)
	if err != nil {
		return nil, err
	}
	summaries := scoring.BuildSummaries(rows)

	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, key, summaries, ttl); err != nil {
			a.logger.Warn("Failed to cache ranked summaries", zap.Error(err))
		}
	}

	return summaries, nil
}
