package handlers

import (
	"net/http"
	"parts_manager/internal/apperrors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err), apperrors.IsInsufficientStock(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsState(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// actorID reads the acting user from the X-Actor-ID header. Session handling
// lives outside this service; the header is trusted from the gateway.
func actorID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.GetHeader("X-Actor-ID"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
