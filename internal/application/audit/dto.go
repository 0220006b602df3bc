package audit

import (
	"time"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// RecordEntryRequest represents a request to append an audit entry
type RecordEntryRequest struct {
	ActionType  string         `json:"action_type" binding:"required"`
	EntityType  string         `json:"entity_type" binding:"required"`
	EntityID    uuid.UUID      `json:"entity_id" binding:"required"`
	Description string         `json:"description"`
	OrderID     *uuid.UUID     `json:"order_id"`
	CustomerID  *uuid.UUID     `json:"customer_id"`
	Metadata    map[string]any `json:"metadata"`
	PerformedBy string         `json:"performed_by"`
}

// ListFilter represents retrieval filters, passed through to storage
type ListFilter struct {
	Limit      int        `form:"limit" binding:"min=0,max=500"`
	Offset     int        `form:"offset" binding:"min=0"`
	OrderID    *uuid.UUID `form:"order_id"`
	CustomerID *uuid.UUID `form:"customer_id"`
	EntityType string     `form:"entity_type"`
	ActionType string     `form:"action_type"`
}

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID          uuid.UUID      `json:"id"`
	ActionType  string         `json:"action_type"`
	EntityType  string         `json:"entity_type"`
	EntityID    uuid.UUID      `json:"entity_id"`
	OrderID     *uuid.UUID     `json:"order_id,omitempty"`
	CustomerID  *uuid.UUID     `json:"customer_id,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	PerformedBy string         `json:"performed_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// DayGroup is one presentation bucket of the grouped timeline
type DayGroup struct {
	Date    string          `json:"date"`
	Label   string          `json:"label"`
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain entry to a response
func ToEntryResponse(entry *audit.LogEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		ActionType:  string(entry.ActionType),
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		OrderID:     entry.OrderID,
		CustomerID:  entry.CustomerID,
		Description: entry.Description,
		Metadata:    entry.Metadata,
		PerformedBy: entry.PerformedBy,
		CreatedAt:   entry.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries
func ToEntryResponses(entries []audit.LogEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for idx := range entries {
		responses[idx] = ToEntryResponse(&entries[idx])
	}
	return responses
}
