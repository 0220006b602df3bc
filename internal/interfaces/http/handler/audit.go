package handler

import (
	"strconv"

	auditapp "github.com/garmsource/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles audit log API endpoints. The log is append-only;
// there are no update or delete routes.
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Record appends a manual audit entry. Most entries are written by the
// event recorder; this endpoint exists for out-of-band notes.
func (h *AuditHandler) Record(c *gin.Context) {
	var req auditapp.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.PerformedBy == "" {
		req.PerformedBy = getActor(c)
	}

	entry, err := h.auditService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// List returns audit entries matching the filter, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var filter auditapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, total, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Mirror the service-side default so the meta block reports the
	// page size actually applied
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	page := filter.Offset/limit + 1
	h.SuccessWithMeta(c, entries, total, page, limit)
}

// Recent returns the most recent audit entries
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := parseLimit(c, 20)

	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// Timeline returns recent entries grouped into day buckets
func (h *AuditHandler) Timeline(c *gin.Context) {
	limit := parseLimit(c, 50)

	groups, err := h.auditService.ListGroupedByDay(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit")
	{
		audit.GET("", h.List)
		audit.POST("", h.Record)
		audit.GET("/recent", h.Recent)
		audit.GET("/timeline", h.Timeline)
	}
}
