package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var model models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expense records matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]finance.ExpenseRecord, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// FindByPeriod finds expense records incurred inside the half-open interval [from, to)
func (r *GormExpenseRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]finance.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).
		Where("incurred_at >= ? AND incurred_at < ?", from, to).
		Order("incurred_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]finance.ExpenseRecord, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	model := models.ExpenseRecordModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense record
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts expense records matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseRecordSortFields, "incurred_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("description ILIKE ? OR reference ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "start_date":
			query = query.Where("incurred_at >= ?", value)
		case "end_date":
			query = query.Where("incurred_at < ?", value)
		}
	}

	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
