package handlers

import (
	"net/http"
	"parts_manager/internal/models"
	"parts_manager/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsService services.MetricsService
}

func NewMetricsHandler(metricsService services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

func (h *MetricsHandler) MachineCounts(c *gin.Context) {
	counts, err := h.metricsService.MachineCounts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *MetricsHandler) ManageableOrders(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	count, err := h.metricsService.ManageableOrderCount(role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role, "manageable_orders": count})
}

func (h *MetricsHandler) MostOrderedParts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	totals, err := h.metricsService.MostOrderedParts(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *MetricsHandler) TopMaintenanceSections(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	counts, err := h.metricsService.TopMaintenanceSections(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
