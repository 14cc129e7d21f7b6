package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketplace-search-service/internal/app/service"
)

const dashboardTrendLimit = 10

// DashboardHandler renders the trends dashboard.
type DashboardHandler struct {
	trends *service.TrendService
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(trends *service.TrendService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		trends: trends,
		logger: logger,
	}
}

// Render handles GET /dashboard
// Renders the trends dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	searches := h.trends.TrendingSearches(c.Context(), dashboardTrendLimit)
	categories := h.trends.TrendingCategories(c.Context(), dashboardTrendLimit)

	return c.Render("pages/dashboard", fiber.Map{
		"Title":              "Marketplace Search Dashboard",
		"TrendingSearches":   searches,
		"TrendingCategories": categories,
	}, "layouts/base")
}
