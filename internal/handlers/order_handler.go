package handlers

import (
	"net/http"
	"parts_manager/internal/models"
	"parts_manager/internal/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Kind             string `json:"kind" binding:"required"`
		Note             string `json:"note"`
		DepartmentID     uint   `json:"department_id" binding:"required"`
		FactoryID        uint   `json:"factory_id" binding:"required"`
		FactorySectionID *uint  `json:"factory_section_id"`
		MachineID        *uint  `json:"machine_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.CreateOrder(services.CreateOrderInput{
		Kind:             models.OrderKind(req.Kind),
		Note:             req.Note,
		CreatedByID:      actorID(c),
		DepartmentID:     req.DepartmentID,
		FactoryID:        req.FactoryID,
		FactorySectionID: req.FactorySectionID,
		MachineID:        req.MachineID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrderDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := models.OrderFilter{
		IDQuery: c.Query("id_query"),
	}

	if v := c.Query("kind"); v != "" {
		kind := models.OrderKind(v)
		filter.Kind = &kind
	}
	if id, ok := queryID(c, "status_id"); ok {
		filter.StatusID = &id
	}
	if id, ok := queryID(c, "department_id"); ok {
		filter.DepartmentID = &id
	}
	if id, ok := queryID(c, "factory_id"); ok {
		filter.FactoryID = &id
	}
	if id, ok := queryID(c, "factory_section_id"); ok {
		filter.FactorySectionID = &id
	}
	if id, ok := queryID(c, "machine_id"); ok {
		filter.MachineID = &id
	}
	if t, ok := queryTime(c, "from"); ok {
		filter.CreatedFrom = &t
	}
	if t, ok := queryTime(c, "to"); ok {
		filter.CreatedTo = &t
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	orders, total, err := h.orderService.ListOrders(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		StatusID uint `json:"status_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderService.SetStatus(id, req.StatusID, actorID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": id, "status_id": req.StatusID})
}

func (h *OrderHandler) GetTimeline(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	entries, err := h.orderService.GetTimeline(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": id, "timeline": entries})
}

func (h *OrderHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.orderService.ListStatuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func queryID(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func queryTime(c *gin.Context, name string) (time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
