// Package partner implements the JSON partner listing feed client.
package partner

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"marketplace-search-service/internal/domain"
	"marketplace-search-service/internal/infra/feed"
)

// Endpoint is the API path for the partner's listings export.
const Endpoint = "/api/listings"

// Client implements domain.ListingFeed for the partner feed.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new partner feed client.
func New(name string, cfg feed.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   name,
		client: feed.NewRestyClient(cfg),
		cb:     feed.NewCircuitBreaker[*resty.Response](name, cfg.CB),
		logger: logger,
	}
}

// Name returns the feed identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the partner's current listings.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Listing, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("%s returned status %d", c.name, r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("feed fetch failed",
			zap.String("feed", c.name),
			zap.Error(err),
			zap.String("breaker_state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from %s: %w", c.name, err)
	}

	result := resp.Result().(*Response)
	listings := make([]*domain.Listing, 0, len(result.Listings))
	for i := range result.Listings {
		listings = append(listings, result.Listings[i].ToDomain(c.name))
	}

	c.logger.Info("feed fetch completed",
		zap.String("feed", c.name),
		zap.Int("count", len(listings)),
	)

	return listings, nil
}

// HealthCheck verifies the feed is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
