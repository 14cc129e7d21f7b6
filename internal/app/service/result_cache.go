package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

// ResultCache stores serialized search results in a byte cache with a TTL.
// It is an explicit, injected instance with no package-level state; the
// process creates exactly one at startup. Every failure of the underlying
// store is absorbed and logged: a cache bug degrades performance, never
// correctness, so callers only ever observe hit or miss.
type ResultCache struct {
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache creates a ResultCache over a byte cache. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewResultCache(cache domain.Cache, ttl time.Duration, logger *zap.Logger) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached result for key, or nil on miss, expiry, or any
// cache failure.
func (rc *ResultCache) Get(ctx context.Context, key string) *domain.SearchResult {
	data, err := rc.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		rc.logger.Warn("discarding undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = rc.cache.Delete(ctx, key)

		return nil
	}

	return &result
}

// Set stores a result under key. Failures are logged and swallowed.
func (rc *ResultCache) Set(ctx context.Context, key string, result *domain.SearchResult) {
	data, err := json.Marshal(result)
	if err != nil {
		rc.logger.Warn("failed to encode result for cache", zap.Error(err))
		return
	}

	// The byte cache logs its own failures; nothing more to do on error.
	_ = rc.cache.Set(ctx, key, data, rc.ttl)
}

// Clear drops all cached results.
func (rc *ResultCache) Clear(ctx context.Context) error {
	return rc.cache.Clear(ctx)
}

// cacheKey builds a canonical, field-sorted serialization of the filter
// parameters. Free text never reaches here (text searches are not cached).
// Category and condition fields key on their canonical labels, so every
// accepted spelling of the same filter shares one entry. Page and size are
// part of the key: each page caches independently.
func cacheKey(params domain.SearchParams, filter domain.ListingFilter) string {
	parts := make([]string, 0, 10)
	add := func(field, value string) {
		if value != "" {
			parts = append(parts, field+"="+value)
		}
	}

	if filter.CategoryID != nil {
		add("cat", strconv.FormatInt(*filter.CategoryID, 10))
	} else if len(filter.CategoryNames) > 0 {
		add("cat", filter.CategoryNames[0])
	}
	if filter.SubcategoryID != nil {
		add("sub", strconv.FormatInt(*filter.SubcategoryID, 10))
	} else if len(filter.SubcategoryNames) > 0 {
		add("sub", filter.SubcategoryNames[0])
	}
	if len(filter.ConditionNames) > 0 {
		add("cond", filter.ConditionNames[0])
	}
	if filter.MinPrice != nil {
		add("min", strconv.FormatInt(*filter.MinPrice, 10))
	}
	if filter.MaxPrice != nil {
		add("max", strconv.FormatInt(*filter.MaxPrice, 10))
	}
	add("loc", strings.ToLower(filter.Location))
	add("seller", filter.SellerType)
	add("sort", string(params.Sort))
	add("page", strconv.Itoa(params.Page))
	add("size", strconv.Itoa(params.PageSize))

	sort.Strings(parts)

	return "search:" + strings.Join(parts, "&")
}
