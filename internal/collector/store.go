package collector

import (
	"context"

	"github.com/taffe/snackindex/internal/db"
	"github.com/taffe/snackindex/internal/models"
)

// Store is the persistence surface the pipeline needs
type Store interface {
	Snacks(ctx context.Context) ([]models.Snack, error)
	Aliases(ctx context.Context) ([]models.SnackAlias, error)
	LastKnownPrices(ctx context.Context) (map[int64]float64, error)
	UpsertMetric(ctx context.Context, metric *models.DailyMetric) error
	InsertMentions(ctx context.Context, mentions []models.Mention) error
}

type dbStore struct {
	snacks   *db.SnackRepository
	metrics  *db.MetricRepository
	mentions *db.MentionRepository
}

// NewStore adapts the database repositories into the pipeline's store
func NewStore(database *db.DB) Store {
	repo := db.NewRepository(database.DB)
	return &dbStore{
		snacks:   db.NewSnackRepository(repo),
		metrics:  db.NewMetricRepository(repo),
		mentions: db.NewMentionRepository(repo),
	}
}

func (s *dbStore) Snacks(ctx context.Context) ([]models.Snack, error) {
	return s.snacks.List(ctx)
}

func (s *dbStore) Aliases(ctx context.Context) ([]models.SnackAlias, error) {
	return s.snacks.Aliases(ctx)
}

func (s *dbStore) LastKnownPrices(ctx context.Context) (map[int64]float64, error) {
	return s.metrics.LastKnownPrices(ctx)
}

func (s *dbStore) UpsertMetric(ctx context.Context, metric *models.DailyMetric) error {
	return s.metrics.Upsert(ctx, metric)
}

func (s *dbStore) InsertMentions(ctx context.Context, mentions []models.Mention) error {
	return s.mentions.Insert(ctx, mentions)
}
