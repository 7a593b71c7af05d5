package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
	"github.com/bekhruzRakhmonov/educative-platform/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the role-shaped course overview for the caller.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Getting dashboard", "user_id", user.ID)

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
