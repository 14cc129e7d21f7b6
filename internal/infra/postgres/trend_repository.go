package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"marketplace-search-service/internal/domain"
)

// TrendRepository implements domain.TrendRepository using PostgreSQL.
type TrendRepository struct {
	db *gorm.DB
}

// NewTrendRepository creates a new trend repository.
func NewTrendRepository(db *gorm.DB) *TrendRepository {
	return &TrendRepository{db: db}
}

// Increment upserts the trend record for a normalized query in a single
// statement. Counter rollover and increments happen inside the database,
// so concurrent calls for the same key never lose updates: every RHS
// reference reads the pre-update row.
//
// Rollover rules, relative to the record's last_searched_at:
//   - touched today:        daily += 1, yesterday unchanged
//   - touched yesterday:    yesterday = old daily, daily = 1
//   - older:                yesterday = 0, daily = 1
//   - weekly resets when the record was last touched before this ISO week.
func (r *TrendRepository) Increment(ctx context.Context, query string) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO search_trends
			(query, total_count, daily_count, yesterday_count, weekly_count,
			 last_searched_at, created_at, updated_at)
		VALUES (?, 1, 1, 0, 1, now(), now(), now())
		ON CONFLICT (query) DO UPDATE SET
			total_count = search_trends.total_count + 1,
			yesterday_count = CASE
				WHEN search_trends.last_searched_at >= date_trunc('day', now())
					THEN search_trends.yesterday_count
				WHEN search_trends.last_searched_at >= date_trunc('day', now()) - interval '1 day'
					THEN search_trends.daily_count
				ELSE 0
			END,
			daily_count = CASE
				WHEN search_trends.last_searched_at >= date_trunc('day', now())
					THEN search_trends.daily_count + 1
				ELSE 1
			END,
			weekly_count = CASE
				WHEN search_trends.last_searched_at >= date_trunc('week', now())
					THEN search_trends.weekly_count + 1
				ELSE 1
			END,
			last_searched_at = now(),
			updated_at = now()`,
		query,
	).Error
	if err != nil {
		return fmt.Errorf("incrementing search trend %q: %w", query, err)
	}

	return nil
}

// TopByPopularity returns records searched within the activity window,
// ordered by the recency-weighted composite score (total + 2 * daily).
func (r *TrendRepository) TopByPopularity(ctx context.Context, window time.Duration, limit int) ([]*domain.SearchTrend, error) {
	var models []SearchTrendModel

	err := r.db.WithContext(ctx).
		Where("last_searched_at > ?", time.Now().UTC().Add(-window)).
		Order("total_count + 2 * daily_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("loading top search trends: %w", err)
	}

	trends := make([]*domain.SearchTrend, len(models))
	for i := range models {
		trends[i] = models[i].ToDomain()
	}

	return trends, nil
}

// ResetStaleDailyCounters zeroes daily counters for records untouched longer
// than the cutoff. Purely bounds counter growth; trend classification already
// discounts stale counters by date.
func (r *TrendRepository) ResetStaleDailyCounters(ctx context.Context, cutoff time.Duration) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&SearchTrendModel{}).
		Where("last_searched_at < ?", time.Now().UTC().Add(-cutoff)).
		Where("daily_count > 0 OR yesterday_count > 0").
		Updates(map[string]interface{}{"daily_count": 0, "yesterday_count": 0})
	if result.Error != nil {
		return 0, fmt.Errorf("resetting daily counters: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ResetStaleWeeklyCounters zeroes weekly counters for records untouched
// longer than the cutoff.
func (r *TrendRepository) ResetStaleWeeklyCounters(ctx context.Context, cutoff time.Duration) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&SearchTrendModel{}).
		Where("last_searched_at < ?", time.Now().UTC().Add(-cutoff)).
		Where("weekly_count > 0").
		Update("weekly_count", 0)
	if result.Error != nil {
		return 0, fmt.Errorf("resetting weekly counters: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// PurgeStale deletes records untouched longer than the cutoff with an
// all-time count below minCount.
func (r *TrendRepository) PurgeStale(ctx context.Context, cutoff time.Duration, minCount int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("last_searched_at < ?", time.Now().UTC().Add(-cutoff)).
		Where("total_count < ?", minCount).
		Delete(&SearchTrendModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("purging stale trends: %w", result.Error)
	}

	return result.RowsAffected, nil
}
