package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/models"
	"github.com/taffe/snackindex/pkg/logging"
	"github.com/taffe/snackindex/pkg/telemetry"
)

// Pipeline runs one collection cycle: for every snack it gathers search
// interest, social and news mentions, and a stock quote, then writes one
// metric row for yesterday plus the raw mentions. Sources may be nil when
// their credentials are missing; those metrics stay at zero.
type Pipeline struct {
	store    Store
	trends   TrendsSource
	reddit   MentionSource
	news     MentionSource
	quotes   QuoteSource
	analyzer *govader.SentimentIntensityAnalyzer
	logger   *zap.Logger

	// pause between snacks, overridable in tests
	pause func(ctx context.Context) error
}

// NewPipeline creates a collection pipeline over the given sources
func NewPipeline(store Store, trends TrendsSource, reddit, news MentionSource, quotes QuoteSource) *Pipeline {
	logger := logging.WithComponent("collector-pipeline")
	if trends == nil {
		logger.Warn("Trends source disabled")
	}
	if reddit == nil {
		logger.Warn("Reddit source disabled, missing credentials")
	}
	if news == nil {
		logger.Warn("News source disabled, missing credentials")
	}
	if quotes == nil {
		logger.Warn("Quote source disabled, missing credentials")
	}
	return &Pipeline{
		store:    store,
		trends:   trends,
		reddit:   reddit,
		news:     news,
		quotes:   quotes,
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		logger:   logger,
		pause:    politePause,
	}
}

// Run executes one full collection cycle
func (p *Pipeline) Run(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "collector.run")
	defer span.End()

	started := time.Now()

	snacks, err := p.store.Snacks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snacks: %w", err)
	}
	aliases, err := p.store.Aliases(ctx)
	if err != nil {
		return fmt.Errorf("failed to load aliases: %w", err)
	}
	targets := BuildTargets(snacks, aliases)

	lastPrices, err := p.store.LastKnownPrices(ctx)
	if err != nil {
		return fmt.Errorf("failed to load last known prices: %w", err)
	}

	// Metrics describe the completed day
	metricDate := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	since := time.Now().Add(-24 * time.Hour)

	// Snacks from the same company share a quote
	quoteMemo := make(map[string]float64)

	var failures int
	for i, target := range targets {
		if i > 0 {
			if err := p.pause(ctx); err != nil {
				return err
			}
		}
		if err := p.collectOne(ctx, target, metricDate, since, lastPrices, quoteMemo); err != nil {
			p.logger.Error("Collection failed for snack",
				zap.String("snack", target.Name),
				zap.Error(err))
			failures++
		}
	}

	p.logger.Info("Collection cycle finished",
		zap.Int("snacks", len(targets)),
		zap.Int("failures", failures),
		zap.Duration("elapsed", time.Since(started)))

	if failures == len(targets) && len(targets) > 0 {
		return fmt.Errorf("collection failed for all %d snacks", len(targets))
	}
	return nil
}

func (p *Pipeline) collectOne(ctx context.Context, target Target, metricDate, since time.Time,
	lastPrices map[int64]float64, quoteMemo map[string]float64) error {

	ctx, span := telemetry.StartSpan(ctx, "collector.collect_snack")
	defer span.End()

	logger := p.logger.With(zap.String("snack", target.Name))

	var trendsScore float64
	if p.trends != nil {
		score, err := p.trends.InterestScore(ctx, target.SearchTerms)
		if err != nil {
			logger.Warn("Trends lookup failed", zap.Error(err))
		} else {
			trendsScore = score
		}
	}

	var redditMentions []models.Mention
	if p.reddit != nil {
		raw, err := p.reddit.Search(ctx, target.RedditQuery, since)
		if err != nil {
			logger.Warn("Reddit search failed", zap.Error(err))
		} else {
			redditMentions = p.scoreMentions(target.SnackID, raw)
		}
	}

	var newsMentions []models.Mention
	if p.news != nil {
		raw, err := p.news.Search(ctx, target.NewsQuery, since)
		if err != nil {
			logger.Warn("News search failed", zap.Error(err))
		} else {
			newsMentions = p.scoreMentions(target.SnackID, dedupeByURL(raw))
		}
	}

	metric := &models.DailyMetric{
		SnackID:            target.SnackID,
		Date:               metricDate,
		GoogleTrendsScore:  floatPtr(trendsScore),
		RedditMentionCount: intPtr(int64(len(redditMentions))),
		AvgRedditSentiment: floatPtr(avgSentiment(redditMentions)),
		NewsArticleCount:   intPtr(int64(len(newsMentions))),
		AvgNewsSentiment:   floatPtr(avgSentiment(newsMentions)),
	}

	if target.StockTicker != nil && *target.StockTicker != "" {
		price := p.quotePrice(ctx, logger, *target.StockTicker, quoteMemo)
		if price == 0 {
			// Markets closed or symbol unknown, reuse the last close we saw
			price = lastPrices[target.SnackID]
		}
		if price > 0 {
			metric.StockClosePrice = floatPtr(price)
		}
	}

	if err := p.store.UpsertMetric(ctx, metric); err != nil {
		return fmt.Errorf("failed to store metrics: %w", err)
	}

	mentions := append(redditMentions, newsMentions...)
	if err := p.store.InsertMentions(ctx, mentions); err != nil {
		return fmt.Errorf("failed to store mentions: %w", err)
	}

	logger.Debug("Snack collected",
		zap.Float64("trends", trendsScore),
		zap.Int("reddit_mentions", len(redditMentions)),
		zap.Int("news_articles", len(newsMentions)))
	return nil
}

func (p *Pipeline) quotePrice(ctx context.Context, logger *zap.Logger, ticker string, memo map[string]float64) float64 {
	if p.quotes == nil {
		return 0
	}
	if price, seen := memo[ticker]; seen {
		return price
	}
	price, err := p.quotes.Quote(ctx, ticker)
	if err != nil {
		logger.Warn("Quote lookup failed", zap.String("ticker", ticker), zap.Error(err))
		price = 0
	}
	memo[ticker] = price
	return price
}

// scoreMentions attaches a compound sentiment score to each raw mention
func (p *Pipeline) scoreMentions(snackID int64, raw []RawMention) []models.Mention {
	mentions := make([]models.Mention, 0, len(raw))
	for _, item := range raw {
		mentions = append(mentions, models.Mention{
			SnackID:        snackID,
			Source:         item.Source,
			SourceName:     item.SourceName,
			Content:        item.Content,
			URL:            item.URL,
			SentimentScore: p.analyzer.PolarityScores(item.Content).Compound,
			PublishedAt:    item.PublishedAt,
		})
	}
	return mentions
}

// avgSentiment averages compound scores, returning 0 for an empty set
func avgSentiment(mentions []models.Mention) float64 {
	if len(mentions) == 0 {
		return 0
	}
	var sum float64
	for _, mention := range mentions {
		sum += mention.SentimentScore
	}
	return sum / float64(len(mentions))
}

// dedupeByURL keeps the first mention per URL, preserving order
func dedupeByURL(raw []RawMention) []RawMention {
	seen := make(map[string]bool, len(raw))
	out := make([]RawMention, 0, len(raw))
	for _, item := range raw {
		if item.URL != "" && seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		out = append(out, item)
	}
	return out
}

// politePause sleeps a few seconds so upstream APIs are not hammered
func politePause(ctx context.Context) error {
	delay := time.Duration(2000+rand.Intn(3000)) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int64) *int64 { return &v }
