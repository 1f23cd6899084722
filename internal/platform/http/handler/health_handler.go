// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler serves the /healthz endpoint, reporting whether the
// datastore is reachable.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a HealthHandler bound to the given database.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles the /healthz endpoint.
// It responds per HTTP method, prevents caching, and returns 503 with
// database:false when the store cannot be pinged.
func (h *HealthHandler) Health(c *gin.Context) {
	// Explicitly prevent caching
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		if h.dbReachable(c) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "database": true})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": false})
		}
	}
}

// dbReachable pings the underlying connection pool.
func (h *HealthHandler) dbReachable(c *gin.Context) bool {
	if h.db == nil {
		return false
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(c.Request.Context()) == nil
}
