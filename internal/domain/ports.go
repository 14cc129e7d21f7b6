package domain

import (
	"context"
	"time"
)

// ListingRepository defines listing persistence operations.
// Implementations: internal/infra/postgres/repository.go
type ListingRepository interface {
	// Find returns listings matching the filter, ordered by sort, paginated.
	Find(ctx context.Context, filter ListingFilter, sort SortMode, limit, offset int) ([]*Listing, error)

	// Count returns the number of listings matching the same filter
	// semantics as Find.
	Count(ctx context.Context, filter ListingFilter) (int64, error)

	// BulkUpsert creates or updates imported listings in a batch, keyed by
	// source + external ID.
	BulkUpsert(ctx context.Context, listings []*Listing) error

	// CategoryActivity returns per-category listing creation counts over the
	// last window and the equally-sized window before it.
	CategoryActivity(ctx context.Context, window time.Duration) ([]CategoryActivity, error)
}

// CategoryLookup resolves free-form category names to taxonomy rows.
// Implementations: internal/infra/postgres/repository.go
type CategoryLookup interface {
	// ResolveCategory finds a top-level category whose slug or name matches
	// any candidate (case-insensitive). Returns nil when nothing matches.
	ResolveCategory(ctx context.Context, candidates []string) (*Category, error)

	// ResolveSubcategory finds a subcategory matching any candidate,
	// optionally restricted to children of parentID.
	ResolveSubcategory(ctx context.Context, parentID *int64, candidates []string) (*Category, error)
}

// TrendRepository persists rolling search-trend counters.
// Implementations: internal/infra/postgres/trend_repository.go
type TrendRepository interface {
	// Increment upserts the record for a normalized query, atomically
	// bumping its total/daily/weekly counters with day and week rollover.
	// Safe for concurrent calls on the same key.
	Increment(ctx context.Context, query string) error

	// TopByPopularity returns records searched within the activity window,
	// ordered by the composite popularity score, limited.
	TopByPopularity(ctx context.Context, window time.Duration, limit int) ([]*SearchTrend, error)

	// ResetStaleDailyCounters zeroes daily counters for records untouched
	// longer than the cutoff. Returns the number of records touched.
	ResetStaleDailyCounters(ctx context.Context, cutoff time.Duration) (int64, error)

	// ResetStaleWeeklyCounters zeroes weekly counters for records untouched
	// longer than the cutoff.
	ResetStaleWeeklyCounters(ctx context.Context, cutoff time.Duration) (int64, error)

	// PurgeStale deletes records untouched longer than the cutoff whose
	// all-time count is below minCount.
	PurgeStale(ctx context.Context, cutoff time.Duration, minCount int64) (int64, error)
}

// Cache defines the byte-level caching operations backing the result cache.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil, nil when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}

// ListingFeed is an external source of listings to import.
// Implementations: internal/infra/feed/partner
type ListingFeed interface {
	// Name returns the unique feed identifier.
	Name() string

	// Fetch retrieves the feed's current listings.
	Fetch(ctx context.Context) ([]*Listing, error)

	// HealthCheck verifies the feed is accessible.
	HealthCheck(ctx context.Context) error
}
