package models

import (
	"encoding/json"
	"time"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogModel is the persistence model for an audit log entry. The
// order and customer references are nullable so deletions can detach
// them while the entry text survives.
type AuditLogModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	ActionType  string     `gorm:"type:varchar(50);not null;index"`
	EntityType  string     `gorm:"type:varchar(50);not null;index"`
	EntityID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"type:text;not null"`
	Metadata    []byte     `gorm:"type:jsonb"`
	PerformedBy string     `gorm:"type:varchar(100)"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain LogEntry
func (m *AuditLogModel) ToDomain() *audit.LogEntry {
	entry := &audit.LogEntry{
		ID:          m.ID,
		ActionType:  audit.ActionType(m.ActionType),
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		OrderID:     m.OrderID,
		CustomerID:  m.CustomerID,
		Description: m.Description,
		PerformedBy: m.PerformedBy,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &entry.Metadata)
	}
	return entry
}

// AuditLogModelFromDomain creates a persistence model from a domain LogEntry
func AuditLogModelFromDomain(entry *audit.LogEntry) *AuditLogModel {
	model := &AuditLogModel{
		ID:          entry.ID,
		ActionType:  string(entry.ActionType),
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		OrderID:     entry.OrderID,
		CustomerID:  entry.CustomerID,
		Description: entry.Description,
		PerformedBy: entry.PerformedBy,
		CreatedAt:   entry.CreatedAt,
	}
	if len(entry.Metadata) > 0 {
		if metadata, err := json.Marshal(entry.Metadata); err == nil {
			model.Metadata = metadata
		}
	}
	return model
}
