package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/RodCinelli/gestao-engparente/internal/http/response"
	"github.com/RodCinelli/gestao-engparente/internal/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
}

func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GET /api/dashboard/
func (h *DashboardHandler) Get(c *gin.Context) {
	snap, err := h.dashboard.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, snap)
}
