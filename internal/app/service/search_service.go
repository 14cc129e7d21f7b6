// Package service provides application use cases.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marketplace-search-service/internal/domain"
)

// DefaultCacheTTL is the result cache lifetime when none is configured.
const DefaultCacheTTL = 5 * time.Minute

// SearchService turns loosely-typed search parameters into a deterministic,
// paginated, relevance-ordered result set.
type SearchService struct {
	repo       domain.ListingRepository
	categories domain.CategoryLookup
	cache      *ResultCache // nil disables caching
	logger     *zap.Logger
}

// NewSearchService creates a new SearchService. cache may be nil.
func NewSearchService(
	repo domain.ListingRepository,
	categories domain.CategoryLookup,
	cache *ResultCache,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Search executes a listing search. Malformed optional fields never cause an
// error; only underlying query failures propagate, and they propagate
// unretried. The returned result always satisfies
// TotalPages == ceil(Total/PageSize) and len(Listings) <= PageSize.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	params.Validate()

	s.logger.Debug("searching listings",
		zap.String("query", params.Query),
		zap.String("category", params.Category),
		zap.Int("page", params.Page),
		zap.Int("page_size", params.PageSize),
	)

	filter, err := s.buildFilter(ctx, params)
	if err != nil {
		s.logger.Error("category resolution failed",
			zap.String("category", params.Category),
			zap.String("subcategory", params.Subcategory),
			zap.Error(err),
		)

		return nil, err
	}

	// Free-text result sets are too volatile to cache and their ranking
	// depends on a moving recency window, so only filter-only searches are
	// cache-eligible.
	cacheable := !params.HasQuery() && s.cache != nil
	var key string
	if cacheable {
		key = cacheKey(params, filter)
		if cached := s.cache.Get(ctx, key); cached != nil {
			return cached, nil
		}
	}

	var result *domain.SearchResult
	if params.HasQuery() {
		result, err = s.searchByRelevance(ctx, filter, params)
	} else {
		result, err = s.searchSorted(ctx, filter, params)
	}
	if err != nil {
		s.logger.Error("search query failed",
			zap.String("query", params.Query),
			zap.String("category", params.Category),
			zap.String("sort", string(params.Sort)),
			zap.Error(err),
		)

		return nil, err
	}

	if cacheable {
		s.cache.Set(ctx, key, result)
	}

	return result, nil
}

// ClearCache drops all cached search results. No-op without a cache.
func (s *SearchService) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

// buildFilter normalizes the loose inputs and resolves category and
// subcategory identifiers. The two lookups are independent and run
// concurrently; both must finish before the main fetch because their
// resolved IDs feed the predicate. Unknown names are never an error: the
// filter falls back to the name-variant membership scan.
func (s *SearchService) buildFilter(ctx context.Context, params domain.SearchParams) (domain.ListingFilter, error) {
	filter := domain.ListingFilter{
		Status:   domain.ListingStatusActive,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Location: strings.TrimSpace(params.Location),
	}

	if params.HasQuery() {
		filter.TextVariants = domain.ExpandQueryText(params.Query)
	}

	if params.Condition != "" {
		filter.ConditionNames = domain.Normalize(domain.KindCondition, params.Condition).MatchSet()
	}

	if params.SellerType != "" {
		filter.SellerType = strings.ToLower(strings.TrimSpace(params.SellerType))
	}

	var (
		catNorm = domain.Normalize(domain.KindCategory, params.Category)
		subNorm = domain.Normalize(domain.KindSubcategory, params.Subcategory)
		cat     *domain.Category
		sub     *domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	if params.Category != "" {
		g.Go(func() error {
			var err error
			cat, err = s.categories.ResolveCategory(gctx, catNorm.MatchSet())
			return err
		})
	}
	if params.Subcategory != "" {
		g.Go(func() error {
			var err error
			sub, err = s.categories.ResolveSubcategory(gctx, nil, subNorm.MatchSet())
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return filter, err
	}

	if params.Category != "" {
		if cat != nil {
			filter.CategoryID = &cat.ID
		} else {
			filter.CategoryNames = catNorm.MatchSet()
		}
	}
	if params.Subcategory != "" {
		if sub != nil {
			filter.SubcategoryID = &sub.ID
		} else {
			filter.SubcategoryNames = subNorm.MatchSet()
		}
	}

	return filter, nil
}

// searchSorted is the no-free-text path: the page fetch and the total count
// run concurrently against the same predicate and join before the result is
// assembled.
func (s *SearchService) searchSorted(ctx context.Context, filter domain.ListingFilter, params domain.SearchParams) (*domain.SearchResult, error) {
	var (
		listings []*domain.Listing
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = s.repo.Find(gctx, filter, params.Sort, params.PageSize, params.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewSearchResult(listings, total, params), nil
}

// searchByRelevance is the free-text path: fetch a recency-sorted window
// (capped at RelevanceWindow rows) and the total count concurrently, re-sort
// the window in memory by match quality, then slice out the requested page.
// Ranking only the window is a documented approximation that bounds latency
// instead of doing an exhaustive top-K sort over the whole table.
func (s *SearchService) searchByRelevance(ctx context.Context, filter domain.ListingFilter, params domain.SearchParams) (*domain.SearchResult, error) {
	var (
		window []*domain.Listing
		total  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		window, err = s.repo.Find(gctx, filter, domain.SortNewest, domain.RelevanceWindow, 0)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	domain.RankByRelevance(window, params.Query, filter.TextVariants)
	page := domain.PageSlice(window, params.Page, params.PageSize)

	return domain.NewSearchResult(page, total, params), nil
}
