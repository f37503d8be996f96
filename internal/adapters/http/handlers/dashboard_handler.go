package handlers

import (
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns the admin dashboard
// @Summary Admin dashboard
// @Description System-wide account and grievance statistics
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
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Minister returns the minister dashboard
// @Summary Minister dashboard
// @Description Aggregate grievance statistics by district and category
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/minister [get]
func (h *DashboardHandler) Minister(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetMinisterDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Officer returns the officer dashboard
// @Summary Officer dashboard
// @Description Workload statistics for the authenticated officer
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/officer [get]
func (h *DashboardHandler) Officer(c *fiber.Ctx) error {
	accountID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetOfficerDashboard(c.Context(), accountID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Me returns the citizen dashboard
// @Summary Citizen dashboard
// @Description Summary of the authenticated citizen's own grievances
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	accountID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetCitizenDashboard(c.Context(), accountID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved successfully", data)
}
