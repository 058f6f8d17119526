package handlers

import (
	"net/http"
	"parts_manager/internal/models"
	"parts_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type LineHandler struct {
	lineService services.PartLineService
}

func NewLineHandler(lineService services.PartLineService) *LineHandler {
	return &LineHandler{lineService: lineService}
}

func (h *LineHandler) AddLine(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		PartID     uint   `json:"part_id" binding:"required"`
		Qty        int    `json:"qty" binding:"required"`
		SampleFlag bool   `json:"sample_flag"`
		Note       string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.AddLine(orderID, req.PartID, req.Qty, req.SampleFlag, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, line)
}

func (h *LineHandler) GetOrderLines(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	lines, err := h.lineService.GetOrderLines(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

func (h *LineHandler) GetLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	line, err := h.lineService.GetLine(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line": line, "state": line.State()})
}

func (h *LineHandler) UpdateQty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Qty int `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.UpdateQty(id, req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *LineHandler) SetCosting(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Vendor   string  `json:"vendor" binding:"required"`
		Brand    string  `json:"brand"`
		UnitCost float64 `json:"unit_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.SetCosting(id, req.Vendor, req.Brand, req.UnitCost)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *LineHandler) SetMRR(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		MRRNumber string `json:"mrr_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.SetMRR(id, req.MRRNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *LineHandler) SetOfficeNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		OfficeNote string `json:"office_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.SetOfficeNote(id, req.OfficeNote)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *LineHandler) ReturnLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	line, err := h.lineService.ReturnLine(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *LineHandler) DeleteLine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.lineService.DeleteLine(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"line_id": id, "status": "deleted"})
}

func (h *LineHandler) ToggleApproval(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Gate  string `json:"gate" binding:"required"`
		Value *bool  `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	line, err := h.lineService.ToggleApproval(id, models.ApprovalGate(req.Gate), *req.Value, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}
