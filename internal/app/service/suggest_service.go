package service

import (
	"context"

	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

// SuggestService produces autocomplete suggestions for a partial query.
// Suggestions are a best-effort feature: every failure is absorbed and an
// empty slice returned, so a broken suggestion path never breaks a page.
type SuggestService struct {
	repo   domain.ListingRepository
	logger *zap.Logger
}

// NewSuggestService creates a new SuggestService.
func NewSuggestService(repo domain.ListingRepository, logger *zap.Logger) *SuggestService {
	return &SuggestService{
		repo:   repo,
		logger: logger,
	}
}

// Suggest returns up to limit ranked suggestions for a partial query:
// matching listing titles first (relevance-ordered over a small recency
// window), then matching static category names, then matching known
// locations, until limit is reached or sources run out. Never errors.
func (s *SuggestService) Suggest(ctx context.Context, partial string, limit int) []domain.Suggestion {
	if limit <= 0 || !domain.Trackable(partial) {
		return []domain.Suggestion{}
	}

	suggestions := make([]domain.Suggestion, 0, limit)
	seen := make(map[string]struct{}, limit)
	add := func(kind domain.SuggestionType, value string) bool {
		if len(suggestions) >= limit {
			return false
		}
		if _, dup := seen[value]; dup {
			return true
		}
		seen[value] = struct{}{}
		suggestions = append(suggestions, domain.Suggestion{Type: kind, Value: value})
		return true
	}

	variants := domain.ExpandQueryText(partial)
	filter := domain.ListingFilter{
		Status:       domain.ListingStatusActive,
		TextVariants: variants,
	}

	window, err := s.repo.Find(ctx, filter, domain.SortNewest, domain.SuggestionWindow, 0)
	if err != nil {
		s.logger.Warn("suggestion listing fetch failed, degrading to static sources",
			zap.String("partial", partial),
			zap.Error(err),
		)
		window = nil
	}

	domain.RankByRelevance(window, partial, variants)
	for _, l := range window {
		if !add(domain.SuggestionListing, l.Title) {
			return suggestions
		}
	}

	for _, name := range domain.MatchingCategories(partial) {
		if !add(domain.SuggestionCategory, name) {
			return suggestions
		}
	}

	for _, city := range domain.MatchingLocations(partial) {
		if !add(domain.SuggestionLocation, city) {
			return suggestions
		}
	}

	return suggestions
}
