package handler

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/domain"
	"marketplace-search-service/internal/validator"
)

type emptyListingRepo struct{}

func (emptyListingRepo) Find(context.Context, domain.ListingFilter, domain.SortMode, int, int) ([]*domain.Listing, error) {
	return nil, nil
}
func (emptyListingRepo) Count(context.Context, domain.ListingFilter) (int64, error) { return 0, nil }
func (emptyListingRepo) BulkUpsert(context.Context, []*domain.Listing) error        { return nil }
func (emptyListingRepo) CategoryActivity(context.Context, time.Duration) ([]domain.CategoryActivity, error) {
	return nil, nil
}

type emptyCategoryLookup struct{}

func (emptyCategoryLookup) ResolveCategory(context.Context, []string) (*domain.Category, error) {
	return nil, nil
}
func (emptyCategoryLookup) ResolveSubcategory(context.Context, *int64, []string) (*domain.Category, error) {
	return nil, nil
}

// recordingTrendRepo captures Increment calls made by background tracking.
type recordingTrendRepo struct {
	mu       sync.Mutex
	queries  []string
	recorded chan string
}

func newRecordingTrendRepo() *recordingTrendRepo {
	return &recordingTrendRepo{recorded: make(chan string, 8)}
}

func (r *recordingTrendRepo) Increment(_ context.Context, query string) error {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	r.recorded <- query

	return nil
}

func (r *recordingTrendRepo) TopByPopularity(context.Context, time.Duration, int) ([]*domain.SearchTrend, error) {
	return nil, nil
}
func (r *recordingTrendRepo) ResetStaleDailyCounters(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
func (r *recordingTrendRepo) ResetStaleWeeklyCounters(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
func (r *recordingTrendRepo) PurgeStale(context.Context, time.Duration, int64) (int64, error) {
	return 0, nil
}

func newSearchTestApp(trendRepo domain.TrendRepository) *fiber.App {
	log := zap.NewNop()
	repo := emptyListingRepo{}
	search := service.NewSearchService(repo, emptyCategoryLookup{}, nil, log)
	suggest := service.NewSuggestService(repo, log)
	trends := service.NewTrendService(trendRepo, repo, log)
	h := NewSearchHandler(search, suggest, trends, validator.New(), log)

	app := fiber.New()
	app.Get("/api/v1/listings", h.Search)
	app.Get("/api/v1/suggestions", h.Suggest)

	return app
}

func TestSearch_TracksQueryAfterResponse(t *testing.T) {
	trendRepo := newRecordingTrendRepo()
	app := newSearchTestApp(trendRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/listings?q=iPhone+13", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Tracking runs in a goroutine that outlives the handler; the request
	// buffer it read the query from is recycled by then, so the recorded
	// value proves the handler handed over a stable copy.
	select {
	case got := <-trendRepo.recorded:
		assert.Equal(t, "iphone 13", got)
	case <-time.After(2 * time.Second):
		t.Fatal("query was never tracked")
	}
}

func TestSearch_BlankQueryNotTracked(t *testing.T) {
	trendRepo := newRecordingTrendRepo()
	app := newSearchTestApp(trendRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/listings?q=++", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	select {
	case got := <-trendRepo.recorded:
		t.Fatalf("blank query tracked as %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearch_InvalidParamsRejected(t *testing.T) {
	trendRepo := newRecordingTrendRepo()
	app := newSearchTestApp(trendRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/listings?sort=relevance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
