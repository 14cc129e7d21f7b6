// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/transport/httpserver/dto"
	"marketplace-search-service/internal/validator"
)

const defaultSuggestLimit = 10

// SearchHandler handles search and autocomplete HTTP requests.
type SearchHandler struct {
	search    *service.SearchService
	suggest   *service.SuggestService
	trends    *service.TrendService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(
	search *service.SearchService,
	suggest *service.SuggestService,
	trends *service.TrendService,
	v *validator.Validator,
	logger *zap.Logger,
) *SearchHandler {
	return &SearchHandler{
		search:    search,
		suggest:   suggest,
		trends:    trends,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/listings
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	params := req.ToSearchParams()

	// Record the query for trend analytics without blocking the response.
	// The parsed query aliases fasthttp's request buffer, which is recycled
	// once the handler returns, so the goroutine gets its own copy.
	if params.HasQuery() {
		query := utils.CopyString(params.Query)
		go h.trends.Track(query)
	}

	result, err := h.search.Search(c.Context(), params)
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromSearchResult(result))
}

// Suggest handles GET /api/v1/suggestions
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultSuggestLimit
	}

	suggestions := h.suggest.Suggest(c.Context(), req.Query, limit)

	return c.JSON(dto.SuggestionsResponse{Suggestions: suggestions})
}
