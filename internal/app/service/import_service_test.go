package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
)

func TestImportAll_PartialFailure(t *testing.T) {
	repo := &stubListingRepo{}
	feeds := []domain.ListingFeed{
		&stubFeed{name: "partner", listings: []*domain.Listing{{Title: "a"}, {Title: "b"}}},
		&stubFeed{name: "broken", fetchErr: errStoreDown},
	}
	svc := NewImportService(repo, feeds, zap.NewNop())

	results := svc.ImportAll(context.Background())
	require.Len(t, results, 2)

	byFeed := make(map[string]ImportResult, 2)
	for _, r := range results {
		byFeed[r.Feed] = r
	}

	assert.Equal(t, 2, byFeed["partner"].Count)
	assert.NoError(t, byFeed["partner"].Error)
	assert.ErrorIs(t, byFeed["broken"].Error, errStoreDown)

	// The working feed's listings still landed in the store.
	assert.Len(t, repo.upserted, 2)
}

func TestImportFeed_ByName(t *testing.T) {
	repo := &stubListingRepo{}
	svc := NewImportService(repo, []domain.ListingFeed{
		&stubFeed{name: "partner", listings: []*domain.Listing{{Title: "a"}}},
	}, zap.NewNop())

	result, err := svc.ImportFeed(context.Background(), "partner")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Count)

	_, err = svc.ImportFeed(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestImportFeed_EmptyFeedSkipsUpsert(t *testing.T) {
	repo := &stubListingRepo{}
	svc := NewImportService(repo, []domain.ListingFeed{
		&stubFeed{name: "partner"},
	}, zap.NewNop())

	result, err := svc.ImportFeed(context.Background(), "partner")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, repo.upserted)
}

func TestFeedNames(t *testing.T) {
	svc := NewImportService(&stubListingRepo{}, []domain.ListingFeed{
		&stubFeed{name: "partner"},
		&stubFeed{name: "other"},
	}, zap.NewNop())

	assert.Equal(t, []string{"partner", "other"}, svc.FeedNames())
}
