package handlers

import (
	"net/http"

	"github.com/dt-hbtn/chordgen-api/internal/database"
	"github.com/dt-hbtn/chordgen-api/internal/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler takes the optional user database; nil means none is configured
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "disabled"})
		return
	}

	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		logger.Warn("Database ping failed", logger.Fields{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}
