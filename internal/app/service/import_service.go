package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

// ErrUnknownFeed is returned when an import targets a feed that is not
// registered.
var ErrUnknownFeed = errors.New("unknown feed")

// ImportService pulls listings from external partner feeds into the store.
type ImportService struct {
	repo   domain.ListingRepository
	feeds  []domain.ListingFeed
	logger *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(repo domain.ListingRepository, feeds []domain.ListingFeed, logger *zap.Logger) *ImportService {
	return &ImportService{
		repo:   repo,
		feeds:  feeds,
		logger: logger,
	}
}

// ImportResult holds the outcome of importing one feed.
type ImportResult struct {
	Feed     string
	Count    int
	Duration time.Duration
	Error    error
}

// ImportAll imports every feed concurrently. Partial failures are allowed;
// each feed reports its own result.
func (s *ImportService) ImportAll(ctx context.Context) []ImportResult {
	results := make([]ImportResult, len(s.feeds))
	var wg sync.WaitGroup

	s.logger.Info("starting import from all feeds",
		zap.Int("feed_count", len(s.feeds)),
	)

	for i, f := range s.feeds {
		wg.Add(1)
		go func(idx int, feed domain.ListingFeed) {
			defer wg.Done()
			results[idx] = s.importFeed(ctx, feed)
		}(i, f)
	}

	wg.Wait()

	totalImported := 0
	feedsFailed := 0
	for _, r := range results {
		if r.Error != nil {
			feedsFailed++
		} else {
			totalImported += r.Count
		}
	}

	s.logger.Info("import completed",
		zap.Int("total_imported", totalImported),
		zap.Int("feeds_failed", feedsFailed),
	)

	return results
}

// importFeed fetches and upserts listings from a single feed.
func (s *ImportService) importFeed(ctx context.Context, feed domain.ListingFeed) ImportResult {
	start := time.Now()
	result := ImportResult{Feed: feed.Name()}

	listings, err := feed.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("feed fetch failed",
			zap.String("feed", feed.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(listings) > 0 {
		if err := s.repo.BulkUpsert(ctx, listings); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("bulk upsert failed",
				zap.String("feed", feed.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Count = len(listings)
	result.Duration = time.Since(start)

	s.logger.Info("feed import completed",
		zap.String("feed", feed.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// ImportFeed imports a single feed by name. A failed import is reported in
// the result's Error field, not the returned error; ErrUnknownFeed is the
// only error this returns.
func (s *ImportService) ImportFeed(ctx context.Context, name string) (*ImportResult, error) {
	for _, f := range s.feeds {
		if f.Name() == name {
			result := s.importFeed(ctx, f)
			return &result, nil
		}
	}
	return nil, ErrUnknownFeed
}

// FeedNames returns the names of all registered feeds.
func (s *ImportService) FeedNames() []string {
	names := make([]string, len(s.feeds))
	for i, f := range s.feeds {
		names[i] = f.Name()
	}
	return names
}
