package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

func TestTrack_NormalizesBeforeRecording(t *testing.T) {
	trends := &stubTrendRepo{}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())

	svc.Track("  iPhone 13  ")

	require.Len(t, trends.incremented, 1)
	assert.Equal(t, "iphone 13", trends.incremented[0])
}

func TestTrack_IgnoresShortQueries(t *testing.T) {
	trends := &stubTrendRepo{}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())

	svc.Track("a")
	svc.Track(" ")
	svc.Track("")

	assert.Empty(t, trends.incremented)
}

func TestTrack_StoreFailureIsSwallowed(t *testing.T) {
	trends := &stubTrendRepo{incrementErr: errStoreDown}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())

	// Must not panic or propagate.
	svc.Track("iphone")
}

func TestTrendingSearches_ClassifiesDayOverDay(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	trends := &stubTrendRepo{
		records: []*domain.SearchTrend{
			// Touched today: 6 today vs 4 yesterday = +50% → up.
			{Query: "iphone", TotalCount: 40, DailyCount: 6, YesterdayCount: 4, LastSearchedAt: now.Add(-time.Hour)},
			// Touched yesterday: 0 today vs 5 yesterday → down 100%.
			{Query: "canapé", TotalCount: 5, DailyCount: 5, YesterdayCount: 2, LastSearchedAt: now.AddDate(0, 0, -1)},
			// First activity ever, today → new series, up 100%.
			{Query: "ps5", TotalCount: 3, DailyCount: 3, YesterdayCount: 0, LastSearchedAt: now.Add(-time.Minute)},
		},
	}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())
	svc.now = func() time.Time { return now }

	got := svc.TrendingSearches(context.Background(), 10)
	require.Len(t, got, 3)

	assert.Equal(t, "iphone", got[0].Query)
	assert.Equal(t, int64(40), got[0].Count)
	assert.Equal(t, domain.TrendUp, got[0].Direction)
	assert.InDelta(t, 50.0, got[0].Percentage, 1e-9)

	assert.Equal(t, domain.TrendDown, got[1].Direction)
	assert.InDelta(t, 100.0, got[1].Percentage, 1e-9)

	assert.Equal(t, domain.TrendUp, got[2].Direction)
	assert.InDelta(t, 100.0, got[2].Percentage, 1e-9)
}

func TestTrendingSearches_LimitAndFailure(t *testing.T) {
	trends := &stubTrendRepo{
		records: []*domain.SearchTrend{
			{Query: "un"}, {Query: "deux"}, {Query: "trois"},
		},
	}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())

	assert.Len(t, svc.TrendingSearches(context.Background(), 2), 2)
	assert.Empty(t, svc.TrendingSearches(context.Background(), 0))

	trends.topErr = errStoreDown
	assert.Empty(t, svc.TrendingSearches(context.Background(), 5), "failures degrade to empty")
}

func TestTrendingCategories_OrdersByRecentVolume(t *testing.T) {
	listings := &stubListingRepo{
		activity: []domain.CategoryActivity{
			{CategoryID: 1, CategoryName: "Mode", Recent: 10, Previous: 10},
			{CategoryID: 2, CategoryName: "Électronique", Recent: 40, Previous: 30},
			{CategoryID: 3, CategoryName: "Véhicules", Recent: 20, Previous: 25},
		},
	}
	svc := NewTrendService(&stubTrendRepo{}, listings, zap.NewNop())

	got := svc.TrendingCategories(context.Background(), 10)
	require.Len(t, got, 3)

	// Ordered by listings created in the recent window.
	assert.Equal(t, "Électronique", got[0].CategoryName)
	assert.Equal(t, int64(40), got[0].Count)
	// (40-30)/30 = +33.3% → up
	assert.Equal(t, domain.TrendUp, got[0].Direction)

	assert.Equal(t, "Véhicules", got[1].CategoryName)
	// (20-25)/25 = -20% → down
	assert.Equal(t, domain.TrendDown, got[1].Direction)

	assert.Equal(t, "Mode", got[2].CategoryName)
	assert.Equal(t, domain.TrendStable, got[2].Direction)
}

func TestTrendingCategories_TruncatesAndDegrades(t *testing.T) {
	listings := &stubListingRepo{
		activity: []domain.CategoryActivity{
			{CategoryID: 1, Recent: 3}, {CategoryID: 2, Recent: 2}, {CategoryID: 3, Recent: 1},
		},
	}
	svc := NewTrendService(&stubTrendRepo{}, listings, zap.NewNop())

	assert.Len(t, svc.TrendingCategories(context.Background(), 2), 2)

	listings.activityErr = errStoreDown
	assert.Empty(t, svc.TrendingCategories(context.Background(), 5))
}

func TestRunMaintenance_StepsAreIndependent(t *testing.T) {
	trends := &stubTrendRepo{}
	svc := NewTrendService(trends, &stubListingRepo{}, zap.NewNop())

	svc.RunMaintenance(context.Background())

	assert.Equal(t, 1, trends.dailyResets)
	assert.Equal(t, 1, trends.weeklyResets)
	assert.Equal(t, 1, trends.purges)

	// Failing resets must not stop the purge step.
	failing := &stubTrendRepo{resetErr: errStoreDown}
	svc = NewTrendService(failing, &stubListingRepo{}, zap.NewNop())

	svc.RunMaintenance(context.Background())

	assert.Equal(t, 0, failing.dailyResets)
	assert.Equal(t, 1, failing.purges)
}
