package handlers

import (
	"net/http"
	"parts_manager/internal/repository"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes read-only lookups of the reference catalogs.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogHandler(catalogRepo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

func (h *CatalogHandler) ListFactories(c *gin.Context) {
	factories, err := h.catalogRepo.ListFactories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, factories)
}

func (h *CatalogHandler) ListSections(c *gin.Context) {
	factoryID, ok := paramID(c, "factory_id")
	if !ok {
		return
	}
	sections, err := h.catalogRepo.ListSectionsByFactory(factoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *CatalogHandler) ListMachines(c *gin.Context) {
	sectionID, ok := paramID(c, "section_id")
	if !ok {
		return
	}
	machines, err := h.catalogRepo.ListMachinesBySection(sectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	departments, err := h.catalogRepo.ListDepartments()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *CatalogHandler) ListParts(c *gin.Context) {
	parts, err := h.catalogRepo.ListParts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (h *CatalogHandler) GetPart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	part, err := h.catalogRepo.GetPart(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}
