package handlers

import (
	"net/http"
	"parts_manager/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService services.InventoryService
}

func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) ReceivePart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		ReceivedDate string `json:"received_date" binding:"required"` // YYYY-MM-DD
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	receivedDate, err := time.Parse("2006-01-02", req.ReceivedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "received_date must be YYYY-MM-DD"})
		return
	}

	line, err := h.inventoryService.ReceivePart(id, receivedDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *InventoryHandler) TransferFromStorage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	line, err := h.inventoryService.TransferFromStorage(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

func (h *InventoryHandler) MarkDefective(c *gin.Context) {
	var req struct {
		MachineID uint `json:"machine_id" binding:"required"`
		PartID    uint `json:"part_id" binding:"required"`
		Delta     int  `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.inventoryService.MarkDefective(req.MachineID, req.PartID, req.Delta); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "adjusted"})
}

func (h *InventoryHandler) AdjustMachinePart(c *gin.Context) {
	var req struct {
		MachineID uint `json:"machine_id" binding:"required"`
		PartID    uint `json:"part_id" binding:"required"`
		Qty       int  `json:"qty"`
		ReqQty    int  `json:"req_qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.inventoryService.AdjustMachinePart(req.MachineID, req.PartID, req.Qty, req.ReqQty); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "adjusted"})
}

func (h *InventoryHandler) Damage(c *gin.Context) {
	var req struct {
		FactoryID uint `json:"factory_id" binding:"required"`
		PartID    uint `json:"part_id" binding:"required"`
		Qty       int  `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.inventoryService.Damage(req.FactoryID, req.PartID, req.Qty); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "damaged"})
}

func (h *InventoryHandler) RestockStorage(c *gin.Context) {
	var req struct {
		FactoryID uint `json:"factory_id" binding:"required"`
		PartID    uint `json:"part_id" binding:"required"`
		Qty       int  `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.inventoryService.RestockStorage(req.FactoryID, req.PartID, req.Qty); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "restocked"})
}

func (h *InventoryHandler) ListMachineParts(c *gin.Context) {
	machineID, ok := paramID(c, "machine_id")
	if !ok {
		return
	}

	parts, err := h.inventoryService.ListMachineParts(machineID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (h *InventoryHandler) ListStorageParts(c *gin.Context) {
	factoryID, ok := paramID(c, "factory_id")
	if !ok {
		return
	}

	parts, err := h.inventoryService.ListStorageParts(factoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (h *InventoryHandler) ListDamagedGoods(c *gin.Context) {
	factoryID, ok := paramID(c, "factory_id")
	if !ok {
		return
	}

	goods, err := h.inventoryService.ListDamagedGoods(factoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goods)
}
