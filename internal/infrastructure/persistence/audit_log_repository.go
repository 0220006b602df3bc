package persistence

import (
	"context"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/garmsource/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements LogRepository using GORM. The table
// is append-only: the only UPDATE it ever issues is nulling order or
// customer references after their row is deleted.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append stores a new entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	model := models.AuditLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindRecent returns the newest entries, ordered by createdAt descending
func (r *GormAuditLogRepository) FindRecent(ctx context.Context, limit int) ([]audit.LogEntry, error) {
	return r.Find(ctx, audit.Query{Limit: limit})
}

// Find returns entries matching the query, ordered by createdAt descending
func (r *GormAuditLogRepository) Find(ctx context.Context, query audit.Query) ([]audit.LogEntry, error) {
	var entryModels []models.AuditLogModel
	q := r.applyQuery(r.db.WithContext(ctx).Model(&models.AuditLogModel{}), query)

	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}

	if err := q.Order("created_at DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.LogEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Count counts entries matching the query
func (r *GormAuditLogRepository) Count(ctx context.Context, query audit.Query) (int64, error) {
	var count int64
	q := r.applyQuery(r.db.WithContext(ctx).Model(&models.AuditLogModel{}), query)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NullOrderRefs nulls the order reference on every entry pointing at the
// deleted order, retaining the entries
func (r *GormAuditLogRepository) NullOrderRefs(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AuditLogModel{}).
		Where("order_id = ?", orderID).
		Update("order_id", nil).Error
}

// NullCustomerRefs nulls the customer reference on every entry pointing
// at the deleted customer, retaining the entries
func (r *GormAuditLogRepository) NullCustomerRefs(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AuditLogModel{}).
		Where("customer_id = ?", customerID).
		Update("customer_id", nil).Error
}

func (r *GormAuditLogRepository) applyQuery(q *gorm.DB, query audit.Query) *gorm.DB {
	if query.OrderID != nil {
		q = q.Where("order_id = ?", *query.OrderID)
	}
	if query.CustomerID != nil {
		q = q.Where("customer_id = ?", *query.CustomerID)
	}
	if query.EntityType != "" {
		q = q.Where("entity_type = ?", query.EntityType)
	}
	if query.ActionType != "" {
		q = q.Where("action_type = ?", query.ActionType)
	}
	return q
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
