package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM. Orders load
// and save as a whole: items and payments always travel with the order row.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items and payments
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its unique number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("order_number = ?", strings.TrimSpace(orderNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	if err := query.Preload("Items").Preload("Payments").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(orderModels), nil
}

// FindByCustomer finds all orders for a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByStatus finds all orders carrying the given lifecycle label
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status ordering.OrderStatus) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByPeriod finds orders created inside the half-open interval [from, to)
func (r *GormOrderRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// Save creates or updates the order together with its items and payments.
// Rows no longer present in the aggregate are deleted, so a hard-deleted
// payment stays deleted and the stored payment_status matches the stored
// ledger on the next load.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(model).Error; err != nil {
			return err
		}

		itemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			itemIDs[i] = item.ID
		}
		deleteStale := tx.Where("order_id = ?", model.ID)
		if len(itemIDs) > 0 {
			deleteStale = deleteStale.Where("id NOT IN ?", itemIDs)
		}
		if err := deleteStale.Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&model.Items).Error; err != nil {
				return err
			}
		}

		paymentIDs := make([]uuid.UUID, len(model.Payments))
		for i, payment := range model.Payments {
			paymentIDs[i] = payment.ID
		}
		deleteStalePayments := tx.Where("order_id = ?", model.ID)
		if len(paymentIDs) > 0 {
			deleteStalePayments = deleteStalePayments.Where("id NOT IN ?", paymentIDs)
		}
		if err := deleteStalePayments.Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if len(model.Payments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Payments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the order and cascades to its items and payments
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderNumber checks if an order number is already taken
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("order_number = ?", strings.TrimSpace(orderNumber)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) toDomainSlice(orderModels []models.OrderModel) []ordering.Order {
	orders := make([]ordering.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "production_stage":
			query = query.Where("production_stage = ?", value)
		case "start_date":
			query = query.Where("created_at >= ?", value)
		case "end_date":
			query = query.Where("created_at < ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
