package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

// trackTimeout bounds the fire-and-forget write so a slow store never
// accumulates goroutines.
const trackTimeout = 5 * time.Second

// TrendService records executed searches and derives trend snapshots for
// queries and categories. Writes are fire-and-forget; reads degrade to empty
// results on failure so trend widgets never break a page.
type TrendService struct {
	trends   domain.TrendRepository
	listings domain.ListingRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewTrendService creates a new TrendService.
func NewTrendService(trends domain.TrendRepository, listings domain.ListingRepository, logger *zap.Logger) *TrendService {
	return &TrendService{
		trends:   trends,
		listings: listings,
		logger:   logger,
		now:      time.Now,
	}
}

// Track records one execution of a user search query. Queries shorter than
// two characters after trimming are ignored. The counter increment is atomic
// at the store, so concurrent identical queries never lose updates. Track
// never errors and never blocks on maintenance work; store failures are
// logged and dropped.
func (s *TrendService) Track(query string) {
	if !domain.Trackable(query) {
		return
	}
	normalized := domain.NormalizeQuery(query)

	ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
	defer cancel()

	if err := s.trends.Increment(ctx, normalized); err != nil {
		s.logger.Warn("failed to track search query",
			zap.String("query", normalized),
			zap.Error(err),
		)
	}
}

// TrendingSearches returns up to limit snapshots of recently-active queries,
// ordered by recency-weighted popularity (all-time count + 2x daily count).
// Each snapshot's direction compares today's window against yesterday's.
// Failures degrade to an empty slice.
func (s *TrendService) TrendingSearches(ctx context.Context, limit int) []domain.TrendSnapshot {
	if limit <= 0 {
		return []domain.TrendSnapshot{}
	}

	records, err := s.trends.TopByPopularity(ctx, domain.TrendActivityWindow, limit)
	if err != nil {
		s.logger.Warn("failed to load trending searches", zap.Error(err))
		return []domain.TrendSnapshot{}
	}

	now := s.now()
	snapshots := make([]domain.TrendSnapshot, 0, len(records))
	for _, r := range records {
		today, yesterday := r.WindowCounts(now)
		direction, pct := domain.ClassifyTrend(yesterday, today)

		snapshots = append(snapshots, domain.TrendSnapshot{
			Query:      r.Query,
			Count:      r.TotalCount,
			Direction:  direction,
			Percentage: pct,
		})
	}

	return snapshots
}

// TrendingCategories returns up to limit category snapshots. Unlike search
// trends, the windows count listings created in the category over the last
// 7 days versus the 7 days before that. Ordered by recent listing volume.
// Failures degrade to an empty slice.
func (s *TrendService) TrendingCategories(ctx context.Context, limit int) []domain.TrendSnapshot {
	if limit <= 0 {
		return []domain.TrendSnapshot{}
	}

	activity, err := s.listings.CategoryActivity(ctx, domain.CategoryTrendWindow)
	if err != nil {
		s.logger.Warn("failed to load category activity", zap.Error(err))
		return []domain.TrendSnapshot{}
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Recent > activity[j].Recent
	})

	if len(activity) > limit {
		activity = activity[:limit]
	}

	snapshots := make([]domain.TrendSnapshot, 0, len(activity))
	for _, a := range activity {
		direction, pct := domain.ClassifyTrend(a.Previous, a.Recent)

		snapshots = append(snapshots, domain.TrendSnapshot{
			CategoryID:   a.CategoryID,
			CategoryName: a.CategoryName,
			Count:        a.Recent,
			Direction:    direction,
			Percentage:   pct,
		})
	}

	return snapshots
}

// RunMaintenance bounds counter growth and purges dead records: daily
// counters reset for records untouched >24h, weekly counters for records
// untouched >7d, and records untouched >30d with fewer than 3 total searches
// are deleted. Each step is independent; a failing step is logged and the
// rest still run.
func (s *TrendService) RunMaintenance(ctx context.Context) {
	if n, err := s.trends.ResetStaleDailyCounters(ctx, 24*time.Hour); err != nil {
		s.logger.Error("daily counter reset failed", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("reset stale daily counters", zap.Int64("records", n))
	}

	if n, err := s.trends.ResetStaleWeeklyCounters(ctx, 7*24*time.Hour); err != nil {
		s.logger.Error("weekly counter reset failed", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("reset stale weekly counters", zap.Int64("records", n))
	}

	if n, err := s.trends.PurgeStale(ctx, domain.TrendActivityWindow, domain.PurgeMinCount); err != nil {
		s.logger.Error("stale trend purge failed", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("purged stale trend records", zap.Int64("records", n))
	}
}
