// Package report implements the dashboard aggregation engine: pure,
// stateless functions over in-memory snapshots of orders, products and
// expenses. Nothing here performs I/O or reads the system clock; "now"
// is always passed in so every computation is deterministic.
package report

import (
	"time"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Trend compares the most recent populated month against the prior
// populated month. Months with no data do not participate.
type Trend struct {
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	PctChange decimal.Decimal `json:"pct_change"`
}

// Trends bundles the month-over-month movements shown on the dashboard
type Trends struct {
	Sales    Trend `json:"sales"`
	Orders   Trend `json:"orders"`
	Expenses Trend `json:"expenses"`
}

// KPIs is the headline figures block of the dashboard
type KPIs struct {
	SalesTotal     decimal.Decimal `json:"sales_total"`
	OrdersCount    int             `json:"orders_count"`
	ExpensesTotal  decimal.Decimal `json:"expenses_total"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
	Trends         Trends          `json:"trends"`
}

// ComputeKPIs derives the headline figures from the snapshot. The
// average order value is zero, not an error, when there are no orders.
func ComputeKPIs(products []catalog.Product, orders []ordering.Order, expenses []finance.ExpenseRecord) KPIs {
	salesTotal := decimal.Zero
	for _, order := range orders {
		salesTotal = salesTotal.Add(order.GrandTotal)
	}
	salesTotal = valueobject.Round2(salesTotal)

	expensesTotal := decimal.Zero
	for _, expense := range expenses {
		expensesTotal = expensesTotal.Add(expense.Amount)
	}
	expensesTotal = valueobject.Round2(expensesTotal)

	inventoryValue := decimal.Zero
	for _, product := range products {
		inventoryValue = inventoryValue.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(product.Stock))))
	}
	inventoryValue = valueobject.Round2(inventoryValue)

	avgOrderValue := decimal.Zero
	if len(orders) > 0 {
		avgOrderValue = valueobject.Round2(salesTotal.Div(decimal.NewFromInt(int64(len(orders)))))
	}

	return KPIs{
		SalesTotal:     salesTotal,
		OrdersCount:    len(orders),
		ExpensesTotal:  expensesTotal,
		InventoryValue: inventoryValue,
		AvgOrderValue:  avgOrderValue,
		Trends: Trends{
			Sales:    trendOf(monthlyTotals(orders, orderMonth, orderAmount)),
			Orders:   trendOf(monthlyTotals(orders, orderMonth, func(ordering.Order) decimal.Decimal { return decimal.NewFromInt(1) })),
			Expenses: trendOf(monthlyTotals(expenses, expenseMonth, expenseAmount)),
		},
	}
}

// PctChange follows the dashboard convention: 0 when both months are
// zero, 100 when a previously empty month turns non-zero, otherwise the
// plain percentage.
func PctChange(current, previous decimal.Decimal) decimal.Decimal {
	if current.IsZero() && previous.IsZero() {
		return decimal.Zero
	}
	if previous.IsZero() {
		return decimal.NewFromInt(100)
	}
	return valueobject.Round2(current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)))
}

// trendOf picks the two most recent populated months out of the bucketed
// totals. With a single populated month the prior defaults to zero.
func trendOf(totals map[string]decimal.Decimal) Trend {
	keys := sortedKeys(totals)
	if len(keys) == 0 {
		return Trend{Current: decimal.Zero, Previous: decimal.Zero, PctChange: decimal.Zero}
	}

	current := totals[keys[len(keys)-1]]
	previous := decimal.Zero
	if len(keys) > 1 {
		previous = totals[keys[len(keys)-2]]
	}

	return Trend{
		Current:   current,
		Previous:  previous,
		PctChange: PctChange(current, previous),
	}
}

// monthKey buckets a timestamp by calendar month in its own location
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func orderMonth(o ordering.Order) string           { return monthKey(o.CreatedAt) }
func orderAmount(o ordering.Order) decimal.Decimal { return o.GrandTotal }

func expenseMonth(e finance.ExpenseRecord) string           { return monthKey(e.IncurredAt) }
func expenseAmount(e finance.ExpenseRecord) decimal.Decimal { return e.Amount }

// monthlyTotals buckets records by month key and sums the extracted value
func monthlyTotals[T any](records []T, keyOf func(T) string, valueOf func(T) decimal.Decimal) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(records))
	for _, record := range records {
		key := keyOf(record)
		totals[key] = totals[key].Add(valueOf(record))
	}
	return totals
}
