package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Service defines the order journal's business logic: the append operation
// plus the read-side aggregations the dashboard consumes.
type Service interface {
	Append(ctx context.Context, o *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	DailySales(ctx context.Context, days int) ([]DaySales, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

// DaySales is one calendar-day bucket of sales totals.
type DaySales struct {
	Date   string  `json:"date"`
	Total  float64 `json:"total"`
	Profit float64 `json:"profit"`
	Orders int     `json:"orders"`
}

// DashboardStats mirrors the dashboard's stat cards.
type DashboardStats struct {
	TodaySales    float64 `json:"todaySales"`
	TodayProfit   float64 `json:"todayProfit"`
	TodayOrders   int     `json:"todayOrders"`
	TotalDebt     float64 `json:"totalDebt"`
	DebtorCount   int     `json:"debtorCount"`
	LowStockCount int     `json:"lowStockCount"`
}

type service struct {
	repo    Repository
	catalog StockCounter
	ledger  DebtSummary
}

func NewService(repo Repository, catalog StockCounter, ledger DebtSummary) Service {
	return &service{repo: repo, catalog: catalog, ledger: ledger}
}

func (s *service) Append(ctx context.Context, o *domain.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	return s.repo.AppendOrder(ctx, o)
}

func (s *service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

const dayFormat = "2006-01-02"

// DailySales buckets orders of the last n days by local calendar day,
// oldest first, with empty days zero-filled for charting.
func (s *service) DailySales(ctx context.Context, days int) ([]DaySales, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive: %w", domain.ErrInvalidInput)
	}
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	buckets := make(map[string]*DaySales, days)
	series := make([]DaySales, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format(dayFormat)
		series = append(series, DaySales{Date: day})
		buckets[day] = &series[len(series)-1]
	}
	for _, o := range orders {
		b, ok := buckets[o.Date.Format(dayFormat)]
		if !ok {
			continue
		}
		b.Total += o.Total
		b.Profit += o.Profit
		b.Orders++
	}
	return series, nil
}

func (s *service) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{}
	today := time.Now().Format(dayFormat)
	for _, o := range orders {
		if o.Date.Format(dayFormat) != today {
			continue
		}
		stats.TodaySales += o.Total
		stats.TodayProfit += o.Profit
		stats.TodayOrders++
	}
	stats.TotalDebt, stats.DebtorCount, err = s.ledger.TotalDebt(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount, err = s.catalog.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
