package handlers

import (
	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/core/services"
	"nagari-society/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the dashboard summary endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Member returns the counters for the member home screen
// @Summary Member dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Member(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetMemberDashboard(c.Context(), middleware.IdentityID(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", data)
}

// Admin returns the society-wide counters for the admin home screen
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved", data)
}
