package db

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taffe/snackindex/internal/models"
	"github.com/taffe/snackindex/pkg/logging"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SnackRepository provides snack-related database operations. Its lookups
// fail loudly: callers require the resource to exist.
type SnackRepository struct {
	*Repository
}

// NewSnackRepository creates a new snack repository
func NewSnackRepository(repo *Repository) *SnackRepository {
	return &SnackRepository{Repository: repo}
}

// List retrieves all snacks ordered by name, with their company joined
func (r *SnackRepository) List(ctx context.Context) ([]models.Snack, error) {
	snacks := []models.Snack{}
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Order("name").
		Find(&snacks).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch snacks", Err: err}
	}
	return snacks, nil
}

// GetByID retrieves a snack by ID with its company joined
func (r *SnackRepository) GetByID(ctx context.Context, id int64) (*models.Snack, error) {
	var snack models.Snack
	if err := r.db.WithContext(ctx).
		Preload("Company").
		First(&snack, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "snack", ID: id}
		}
		return nil, &DataAccessError{Op: "fetch snack", Err: err}
	}
	return &snack, nil
}

// SearchByName retrieves snacks whose name contains the query,
// case-insensitively, ordered by name
func (r *SnackRepository) SearchByName(ctx context.Context, query string) ([]models.Snack, error) {
	snacks := []models.Snack{}
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Find(&snacks).Error; err != nil {
		return nil, &DataAccessError{Op: "search snacks", Err: err}
	}
	return snacks, nil
}

// Aliases retrieves all alternate search terms, used by the collector to
// build per-snack queries
func (r *SnackRepository) Aliases(ctx context.Context) ([]models.SnackAlias, error) {
	aliases := []models.SnackAlias{}
	if err := r.db.WithContext(ctx).Find(&aliases).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch snack aliases", Err: err}
	}
	return aliases, nil
}

// CompanyRepository provides company-related database operations
type CompanyRepository struct {
	*Repository
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(repo *Repository) *CompanyRepository {
	return &CompanyRepository{Repository: repo}
}

// List retrieves all companies ordered by name
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	if err := r.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch companies", Err: err}
	}
	return companies, nil
}

// MetricRepository provides daily metric database operations
type MetricRepository struct {
	*Repository
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(repo *Repository) *MetricRepository {
	return &MetricRepository{Repository: repo}
}

// ForSnack retrieves up to days most-recent metric rows for a snack,
// newest first
func (r *MetricRepository) ForSnack(ctx context.Context, snackID int64, days int) ([]models.DailyMetric, error) {
	metrics := []models.DailyMetric{}
	if err := r.db.WithContext(ctx).
		Where("snack_id = ?", snackID).
		Order("date DESC").
		Limit(days).
		Find(&metrics).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch metrics", Err: err}
	}
	return metrics, nil
}

// ForSnackAscending retrieves up to limit metric rows for a snack ordered
// oldest to newest, as consumed by the detail timeline
func (r *MetricRepository) ForSnackAscending(ctx context.Context, snackID int64, limit int) ([]models.DailyMetric, error) {
	metrics := []models.DailyMetric{}
	if err := r.db.WithContext(ctx).
		Where("snack_id = ?", snackID).
		Order("date ASC").
		Limit(limit).
		Find(&metrics).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch metrics", Err: err}
	}
	return metrics, nil
}

// AllWithSnacks retrieves every metric row ordered by date descending with
// snack and company joined, feeding the ranked summary computation
func (r *MetricRepository) AllWithSnacks(ctx context.Context) ([]models.DailyMetric, error) {
	metrics := []models.DailyMetric{}
	if err := r.db.WithContext(ctx).
		Preload("Snack.Company").
		Order("date DESC").
		Find(&metrics).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch snacks with metrics", Err: err}
	}
	return metrics, nil
}

// Upsert writes one metric row, replacing any existing row for the same
// (snack, date)
func (r *MetricRepository) Upsert(ctx context.Context, metric *models.DailyMetric) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "snack_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"google_trends_score",
				"reddit_mention_count",
				"avg_reddit_sentiment",
				"news_article_count",
				"avg_news_sentiment",
				"stock_close_price",
			}),
		}).
		Create(metric).Error
}

// LastKnownPrices returns the most recent non-null stock close price per
// snack, used as a fallback when the quote API returns nothing
func (r *MetricRepository) LastKnownPrices(ctx context.Context) (map[int64]float64, error) {
	var rows []models.DailyMetric
	if err := r.db.WithContext(ctx).
		Select("snack_id", "date", "stock_close_price").
		Where("stock_close_price IS NOT NULL").
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, &DataAccessError{Op: "fetch last known prices", Err: err}
	}

	prices := make(map[int64]float64)
	for _, row := range rows {
		if _, seen := prices[row.SnackID]; !seen && row.StockClosePrice != nil {
			prices[row.SnackID] = *row.StockClosePrice
		}
	}
	return prices, nil
}

// MentionRepository provides mention database operations. Its read methods
// degrade softly: a store error is logged and an empty slice returned, since
// "nothing to show" is an acceptable answer on these paths.
type MentionRepository struct {
	*Repository
	logger *zap.Logger
}

// NewMentionRepository creates a new mention repository
func NewMentionRepository(repo *Repository) *MentionRepository {
	return &MentionRepository{
		Repository: repo,
		logger:     logging.WithComponent("mention-repository"),
	}
}

func (r *MentionRepository) find(ctx context.Context, op string, limit int, scope func(*gorm.DB) *gorm.DB) []models.Mention {
	q := r.db.WithContext(ctx).
		Preload("Snack").
		Order("published_at DESC")
	if scope != nil {
		q = scope(q)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	mentions := []models.Mention{}
	if err := q.Find(&mentions).Error; err != nil {
		r.logger.Error("Error fetching mentions", zap.String("op", op), zap.Error(err))
		return []models.Mention{}
	}
	return mentions
}

// List retrieves mentions newest first, optionally limited
func (r *MentionRepository) List(ctx context.Context, limit int) []models.Mention {
	return r.find(ctx, "list", limit, nil)
}

// BySnack retrieves mentions for one snack, newest first
func (r *MentionRepository) BySnack(ctx context.Context, snackID int64, limit int) []models.Mention {
	return r.find(ctx, "by snack", limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("snack_id = ?", snackID)
	})
}

// BySource retrieves mentions with an exact source match, newest first
func (r *MentionRepository) BySource(ctx context.Context, source string, limit int) []models.Mention {
	return r.find(ctx, "by source", limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("source = ?", source)
	})
}

// Recent retrieves mentions published within the last days days, newest first
func (r *MentionRepository) Recent(ctx context.Context, days int, limit int) []models.Mention {
	cutoff := time.Now().AddDate(0, 0, -days)
	return r.find(ctx, "recent", limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("published_at >= ?", cutoff)
	})
}

// Insert writes collected mentions in one batch
func (r *MentionRepository) Insert(ctx context.Context, mentions []models.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&mentions).Error
}
