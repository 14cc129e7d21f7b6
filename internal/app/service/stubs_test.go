package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"marketplace-search-service/internal/domain"
)

var errStoreDown = errors.New("store down")

// stubListingRepo is a canned-response ListingRepository that records calls.
type stubListingRepo struct {
	mu sync.Mutex

	listings []*domain.Listing
	total    int64
	activity []domain.CategoryActivity

	findErr     error
	countErr    error
	activityErr error

	findCalls  int
	countCalls int
	lastFilter domain.ListingFilter
	lastSort   domain.SortMode
	lastLimit  int
	lastOffset int

	upserted []*domain.Listing
}

func (s *stubListingRepo) Find(_ context.Context, filter domain.ListingFilter, sort domain.SortMode, limit, offset int) ([]*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findCalls++
	s.lastFilter = filter
	s.lastSort = sort
	s.lastLimit = limit
	s.lastOffset = offset

	if s.findErr != nil {
		return nil, s.findErr
	}

	if limit >= len(s.listings) {
		return s.listings, nil
	}
	return s.listings[:limit], nil
}

func (s *stubListingRepo) Count(_ context.Context, _ domain.ListingFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.countCalls++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

func (s *stubListingRepo) BulkUpsert(_ context.Context, listings []*domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upserted = append(s.upserted, listings...)
	return nil
}

func (s *stubListingRepo) CategoryActivity(_ context.Context, _ time.Duration) ([]domain.CategoryActivity, error) {
	if s.activityErr != nil {
		return nil, s.activityErr
	}
	return s.activity, nil
}

// stubCategoryLookup resolves fixed category rows.
type stubCategoryLookup struct {
	category    *domain.Category
	subcategory *domain.Category
	err         error
}

func (s *stubCategoryLookup) ResolveCategory(_ context.Context, _ []string) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubCategoryLookup) ResolveSubcategory(_ context.Context, _ *int64, _ []string) (*domain.Category, error) {
	return s.subcategory, s.err
}

// memCache is an in-memory domain.Cache. TTLs are recorded, not enforced;
// tests drop entries explicitly to simulate expiry.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	delete(c.ttls, key)
	return nil
}

func (c *memCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]byte)
	c.ttls = make(map[string]time.Duration)
	return nil
}

func (c *memCache) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *memCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	return out
}

// stubTrendRepo records trend counter operations.
type stubTrendRepo struct {
	mu sync.Mutex

	records []*domain.SearchTrend

	incrementErr error
	topErr       error
	resetErr     error
	purgeErr     error

	incremented  []string
	dailyResets  int
	weeklyResets int
	purges       int
}

func (s *stubTrendRepo) Increment(_ context.Context, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.incremented = append(s.incremented, query)
	return nil
}

func (s *stubTrendRepo) TopByPopularity(_ context.Context, _ time.Duration, limit int) ([]*domain.SearchTrend, error) {
	if s.topErr != nil {
		return nil, s.topErr
	}
	if limit < len(s.records) {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func (s *stubTrendRepo) ResetStaleDailyCounters(_ context.Context, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetErr != nil {
		return 0, s.resetErr
	}
	s.dailyResets++
	return 1, nil
}

func (s *stubTrendRepo) ResetStaleWeeklyCounters(_ context.Context, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resetErr != nil {
		return 0, s.resetErr
	}
	s.weeklyResets++
	return 1, nil
}

func (s *stubTrendRepo) PurgeStale(_ context.Context, _ time.Duration, _ int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.purgeErr != nil {
		return 0, s.purgeErr
	}
	s.purges++
	return 1, nil
}

// stubFeed is a canned ListingFeed.
type stubFeed struct {
	name     string
	listings []*domain.Listing
	fetchErr error
}

func (f *stubFeed) Name() string { return f.name }

func (f *stubFeed) Fetch(_ context.Context) ([]*domain.Listing, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.listings, nil
}

func (f *stubFeed) HealthCheck(_ context.Context) error { return nil }
