package handler

import (
	"net/http"
	"time"

	"github.com/garmsource/backend/internal/infrastructure/persistence"
	"github.com/garmsource/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// HealthStatus is the payload of the health endpoint
type HealthStatus struct {
	Status   string                      `json:"status"`
	Uptime   string                      `json:"uptime"`
	Database persistence.ConnectionStats `json:"database"`
}

// Live reports that the process is up
func (h *HealthHandler) Live(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Ready reports whether the database is reachable
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "database unreachable")
		return
	}

	stats, err := h.db.Stats()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, HealthStatus{
		Status:   "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Database: stats,
	})
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("", h.Live)
		health.GET("/ready", h.Ready)
	}
}
