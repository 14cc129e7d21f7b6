package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/transport/httpserver/dto"
	"marketplace-search-service/internal/validator"
)

const defaultTrendingLimit = 10

// TrendHandler handles trending analytics HTTP requests.
type TrendHandler struct {
	trends    *service.TrendService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewTrendHandler creates a new TrendHandler.
func NewTrendHandler(trends *service.TrendService, v *validator.Validator, logger *zap.Logger) *TrendHandler {
	return &TrendHandler{
		trends:    trends,
		validator: v,
		logger:    logger,
	}
}

// TrendingSearches handles GET /api/v1/trending/searches
func (h *TrendHandler) TrendingSearches(c *fiber.Ctx) error {
	limit, errResp := h.parseLimit(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*errResp)
	}

	trends := h.trends.TrendingSearches(c.Context(), limit)

	return c.JSON(dto.TrendingResponse{Trends: trends})
}

// TrendingCategories handles GET /api/v1/trending/categories
func (h *TrendHandler) TrendingCategories(c *fiber.Ctx) error {
	limit, errResp := h.parseLimit(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*errResp)
	}

	trends := h.trends.TrendingCategories(c.Context(), limit)

	return c.JSON(dto.TrendingResponse{Trends: trends})
}

func (h *TrendHandler) parseLimit(c *fiber.Ctx) (int, *dto.ErrorResponse) {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		return 0, &dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		return 0, &dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		}
	}

	if req.Limit == 0 {
		return defaultTrendingLimit, nil
	}

	return req.Limit, nil
}
