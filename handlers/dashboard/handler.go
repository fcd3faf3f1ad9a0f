package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// DashboardHandler serves the dashboard records and their statistics
type DashboardHandler struct {
	service   *services.DashboardService
	validator *validation.Validator
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetStats handles GET /api/v1/dashboard/stats?weeks=N
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	weeks := c.QueryInt("weeks", services.DefaultTrendWeeks)
	if weeks < 1 || weeks > 52 {
		return response.BadRequest(c, "weeks must be between 1 and 52")
	}

	stats, err := h.service.Stats(c.UserContext(), weeks)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, stats)
}
