package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
	"marketplace-search-service/internal/transport/httpserver/dto"
)

// AdminHandler handles operational HTTP requests: manual feed imports and
// cache invalidation.
type AdminHandler struct {
	importer *service.ImportService
	search   *service.SearchService
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(importer *service.ImportService, search *service.SearchService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		search:   search,
		logger:   logger,
	}
}

// ImportAll handles POST /api/v1/admin/import
func (h *AdminHandler) ImportAll(c *fiber.Ctx) error {
	h.logger.Info("manual import triggered for all feeds")

	results := h.importer.ImportAll(c.Context())

	return c.JSON(dto.FromImportResults(results))
}

// ImportFeed handles POST /api/v1/admin/import/:feed
func (h *AdminHandler) ImportFeed(c *fiber.Ctx) error {
	name := c.Params("feed")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "feed name is required",
			Code:  "MISSING_FEED",
		})
	}

	h.logger.Info("manual import triggered", zap.String("feed", name))

	result, err := h.importer.ImportFeed(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_FEED",
		})
	}

	return c.JSON(dto.FromImportResults([]service.ImportResult{*result}))
}

// GetFeeds handles GET /api/v1/admin/feeds
func (h *AdminHandler) GetFeeds(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"feeds": h.importer.FeedNames(),
	})
}

// ClearCache handles POST /api/v1/admin/cache/clear
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.search.ClearCache(c.Context()); err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "cache clear failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(fiber.Map{"status": "cache cleared"})
}
