package report

import (
	"context"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/report"
	"github.com/garmsource/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Dashboard is the full payload of the dashboard endpoint
type Dashboard struct {
	KPIs              report.KPIs            `json:"kpis"`
	MonthlySales      []report.MonthBucket   `json:"monthly_sales"`
	MonthlyExpenses   []report.MonthBucket   `json:"monthly_expenses"`
	TopProducts       []report.TopProduct    `json:"top_products"`
	LowStock          []report.LowStockItem  `json:"low_stock"`
	ExpenseCategories []report.CategoryShare `json:"expense_categories"`
	OrderStatuses     []report.StatusShare   `json:"order_statuses"`
}

// DashboardService loads the current snapshot of orders, products and
// expenses and runs the pure aggregation engine over it. All time
// arithmetic uses the injected clock.
type DashboardService struct {
	orderRepo    ordering.OrderRepository
	productRepo  catalog.ProductRepository
	expenseRepo  finance.ExpenseRepository
	clock        shared.Clock
	logger       *zap.Logger
	seriesMonths int
	topProducts  int
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	expenseRepo finance.ExpenseRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *DashboardService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &DashboardService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		expenseRepo:  expenseRepo,
		clock:        clock,
		logger:       logger,
		seriesMonths: defaultSeriesMonths,
		topProducts:  defaultTopProducts,
	}
}

const (
	defaultSeriesMonths = 6
	defaultTopProducts  = 5
)

// SetDefaults overrides the series length and top-products row count used
// when a request does not ask for a specific window. Non-positive values
// leave the built-in defaults in place.
func (s *DashboardService) SetDefaults(seriesMonths, topProducts int) {
	if seriesMonths > 0 {
		s.seriesMonths = seriesMonths
	}
	if topProducts > 0 {
		s.topProducts = topProducts
	}
}

// GetDashboard computes the complete dashboard from the current snapshot
func (s *DashboardService) GetDashboard(ctx context.Context, limitMonths int) (*Dashboard, error) {
	if limitMonths <= 0 {
		limitMonths = s.seriesMonths
	}

	orders, products, expenses, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	dashboard := &Dashboard{
		KPIs:              report.ComputeKPIs(products, orders, expenses),
		MonthlySales:      report.MonthlySalesSeries(orders, limitMonths, now),
		MonthlyExpenses:   report.MonthlyExpensesSeries(expenses, limitMonths, now),
		TopProducts:       report.GetTopProducts(orders, s.topProducts),
		LowStock:          report.GetLowStock(products),
		ExpenseCategories: report.GetExpenseCategoryDistribution(expenses),
		OrderStatuses:     report.GetOrderStatusDistribution(orders),
	}

	s.logger.Debug("dashboard computed",
		zap.Int("orders", len(orders)),
		zap.Int("products", len(products)),
		zap.Int("expenses", len(expenses)),
	)

	return dashboard, nil
}

// GetKPIs computes only the headline figures
func (s *DashboardService) GetKPIs(ctx context.Context) (*report.KPIs, error) {
	orders, products, expenses, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	kpis := report.ComputeKPIs(products, orders, expenses)
	return &kpis, nil
}

// GetMonthlySalesSeries computes the gap-free monthly sales series
func (s *DashboardService) GetMonthlySalesSeries(ctx context.Context, limitMonths int) ([]report.MonthBucket, error) {
	if limitMonths <= 0 {
		limitMonths = s.seriesMonths
	}
	orders, err := s.orderRepo.FindAll(ctx, snapshotFilter())
	if err != nil {
		return nil, err
	}
	return report.MonthlySalesSeries(orders, limitMonths, s.clock.Now()), nil
}

// GetMonthlyExpensesSeries computes the gap-free monthly expenses series
func (s *DashboardService) GetMonthlyExpensesSeries(ctx context.Context, limitMonths int) ([]report.MonthBucket, error) {
	if limitMonths <= 0 {
		limitMonths = s.seriesMonths
	}
	expenses, err := s.expenseRepo.FindAll(ctx, snapshotFilter())
	if err != nil {
		return nil, err
	}
	return report.MonthlyExpensesSeries(expenses, limitMonths, s.clock.Now()), nil
}

func (s *DashboardService) loadSnapshot(ctx context.Context) ([]ordering.Order, []catalog.Product, []finance.ExpenseRecord, error) {
	orders, err := s.orderRepo.FindAll(ctx, snapshotFilter())
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := s.productRepo.FindAll(ctx, snapshotFilter())
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.expenseRepo.FindAll(ctx, snapshotFilter())
	if err != nil {
		return nil, nil, nil, err
	}
	return orders, products, expenses, nil
}

// snapshotFilter loads everything: the aggregation engine works over the
// full current snapshot, not a page
func snapshotFilter() shared.Filter {
	return shared.Filter{
		Page:     1,
		PageSize: 0,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
}
