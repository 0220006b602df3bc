package report

import (
	"sort"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProduct is one row of the best-sellers ranking
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// GetTopProducts ranks products by revenue across all order line items,
// descending. Ties break on the product ID string so the output order is
// stable.
func GetTopProducts(orders []ordering.Order, limit int) []TopProduct {
	byProduct := make(map[uuid.UUID]*TopProduct)
	for _, order := range orders {
		for _, item := range order.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &TopProduct{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					ProductCode: item.ProductCode,
					Revenue:     decimal.Zero,
				}
				byProduct[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.Revenue = row.Revenue.Add(item.Total)
		}
	}

	rows := make([]TopProduct, 0, len(byProduct))
	for _, row := range byProduct {
		row.Revenue = valueobject.Round2(row.Revenue)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].ProductID.String() < rows[j].ProductID.String()
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// LowStockItem is one row of the replenishment list
type LowStockItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductCode  string    `json:"product_code"`
	Stock        int       `json:"stock"`
	ReorderLevel int       `json:"reorder_level"`
}

// GetLowStock lists active products at or below their reorder level,
// most depleted first. Ties break on the product code.
func GetLowStock(products []catalog.Product) []LowStockItem {
	rows := make([]LowStockItem, 0)
	for _, product := range products {
		if !product.Active || !product.IsLowStock() {
			continue
		}
		rows = append(rows, LowStockItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductCode:  product.Code,
			Stock:        product.Stock,
			ReorderLevel: product.ReorderLevel,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Stock != rows[j].Stock {
			return rows[i].Stock < rows[j].Stock
		}
		return rows[i].ProductCode < rows[j].ProductCode
	})

	return rows
}

// CategoryShare is one slice of the expense category breakdown
type CategoryShare struct {
	Category finance.ExpenseCategory `json:"category"`
	Total    decimal.Decimal         `json:"total"`
	Count    int                     `json:"count"`
}

// GetExpenseCategoryDistribution sums expenses per category, largest
// total first. Ties break on the category name.
func GetExpenseCategoryDistribution(expenses []finance.ExpenseRecord) []CategoryShare {
	byCategory := make(map[finance.ExpenseCategory]*CategoryShare)
	for _, expense := range expenses {
		share, ok := byCategory[expense.Category]
		if !ok {
			share = &CategoryShare{Category: expense.Category, Total: decimal.Zero}
			byCategory[expense.Category] = share
		}
		share.Total = share.Total.Add(expense.Amount)
		share.Count++
	}

	rows := make([]CategoryShare, 0, len(byCategory))
	for _, share := range byCategory {
		share.Total = valueobject.Round2(share.Total)
		rows = append(rows, *share)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})

	return rows
}

// StatusShare is one slice of the order status breakdown
type StatusShare struct {
	Status ordering.OrderStatus `json:"status"`
	Count  int                  `json:"count"`
	Total  decimal.Decimal      `json:"total"`
}

// GetOrderStatusDistribution counts orders per lifecycle label, most
// frequent first. Ties break on the status name.
func GetOrderStatusDistribution(orders []ordering.Order) []StatusShare {
	byStatus := make(map[ordering.OrderStatus]*StatusShare)
	for _, order := range orders {
		share, ok := byStatus[order.Status]
		if !ok {
			share = &StatusShare{Status: order.Status, Total: decimal.Zero}
			byStatus[order.Status] = share
		}
		share.Count++
		share.Total = share.Total.Add(order.GrandTotal)
	}

	rows := make([]StatusShare, 0, len(byStatus))
	for _, share := range byStatus {
		share.Total = valueobject.Round2(share.Total)
		rows = append(rows, *share)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Status < rows[j].Status
	})

	return rows
}
