package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/cache"
	"github.com/taffe/snackindex/internal/db"
	"github.com/taffe/snackindex/pkg/logging"
)

// Router sets up API routes
type Router struct {
	snacks    *SnackAPI
	companies *CompanyAPI
	mentions  *MentionAPI
	logger    *zap.Logger
}

// NewRouter creates a new API router wired to the database and cache
func NewRouter(database *db.DB, redisCache *cache.Cache) *Router {
	repo := db.NewRepository(database.DB)

	snackRepo := db.NewSnackRepository(repo)
	metricRepo := db.NewMetricRepository(repo)

	return &Router{
		snacks:    NewSnackAPI(snackRepo, metricRepo, redisCache),
		companies: NewCompanyAPI(db.NewCompanyRepository(repo)),
		mentions:  NewMentionAPI(db.NewMentionRepository(repo)),
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	snacks := engine.Group("/snacks")
	{
		snacks.GET("", r.snacks.List)
		snacks.GET("/all", r.snacks.AllWithMetrics)
		snacks.GET("/trending", r.snacks.Trending)
		snacks.GET("/search", r.snacks.Search)
		snacks.GET("/:id", r.snacks.Get)
		snacks.GET("/:id/metrics", r.snacks.Metrics)
		snacks.GET("/:id/detail", r.snacks.Detail)
	}

	engine.GET("/companies", r.companies.List)

	mentions := engine.Group("/mentions")
	{
		mentions.GET("", r.mentions.List)
		mentions.GET("/recent", r.mentions.Recent)
		mentions.GET("/snack/:id", r.mentions.BySnack)
		mentions.GET("/source/:source", r.mentions.BySource)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "snackindex-api",
	})
}
