package handler

import (
	"net/http"

	"editorial/internal/http-api/dto"
	"editorial/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Show serves the personal cabinet, shaped by the caller's role.
func (h *DashboardHandler) Show(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	d, err := h.dashboard.Dashboard(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        dto.NewUserResponse(d.User),
		"manuscripts": d.Manuscripts,
		"reviews":     d.Reviews,
		"counters":    d.Counters,
	})
}
