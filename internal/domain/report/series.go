package report

import (
	"sort"
	"time"

	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MonthBucket is one point of a monthly series
type MonthBucket struct {
	Key        string          `json:"key"`
	MonthLabel string          `json:"month_label"`
	Total      decimal.Decimal `json:"total"`
}

// MonthlySalesSeries buckets order grand totals by calendar month and
// returns exactly limitMonths consecutive buckets ending at the latest
// data month, oldest first. Months without orders appear with a zero
// total; with no data at all the series ends at the current month.
func MonthlySalesSeries(orders []ordering.Order, limitMonths int, now time.Time) []MonthBucket {
	return monthlySeries(monthlyTotals(orders, orderMonth, orderAmount), limitMonths, now)
}

// MonthlyExpensesSeries buckets expense amounts by calendar month with
// the same shape as MonthlySalesSeries
func MonthlyExpensesSeries(expenses []finance.ExpenseRecord, limitMonths int, now time.Time) []MonthBucket {
	return monthlySeries(monthlyTotals(expenses, expenseMonth, expenseAmount), limitMonths, now)
}

func monthlySeries(totals map[string]decimal.Decimal, limitMonths int, now time.Time) []MonthBucket {
	if limitMonths < 1 {
		return []MonthBucket{}
	}

	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if keys := sortedKeys(totals); len(keys) > 0 {
		if latest, err := time.ParseInLocation("2006-01", keys[len(keys)-1], now.Location()); err == nil {
			end = latest
		}
	}

	series := make([]MonthBucket, 0, limitMonths)
	for offset := limitMonths - 1; offset >= 0; offset-- {
		month := end.AddDate(0, -offset, 0)
		key := month.Format("2006-01")

		total := decimal.Zero
		if sum, ok := totals[key]; ok {
			total = valueobject.Round2(sum)
		}

		series = append(series, MonthBucket{
			Key:        key,
			MonthLabel: month.Format("Jan 2006"),
			Total:      total,
		})
	}

	return series
}

// sortedKeys returns the month keys in ascending order; the YYYY-MM
// format makes lexical order chronological
func sortedKeys(totals map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
