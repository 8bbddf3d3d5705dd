package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/cache"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardStats is the aggregate snapshot shown on the register home screen.
type DashboardStats struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	TotalOnHand   int             `json:"totalOnHand"`
	SalesToday    int64           `json:"salesToday"`
	LowStockItems int64           `json:"lowStockItems"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// DashboardService computes the aggregates, cached briefly since every
// register tab polls them. The cache key is invalidated by the stock service
// after each committed mutation, so the 30s TTL is only an upper bound.
type DashboardService struct {
	db     *gorm.DB
	sales  *repositories.SaleRepository
	ledger *repositories.LedgerRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:     db,
		sales:  repositories.NewSaleRepository(db),
		ledger: repositories.NewLedgerRepository(db),
	}
}

// Stats returns the cached snapshot, computing a fresh one on miss.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if cache.Get(statsCacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}

// RecentActivity returns the latest ledger rows for the activity feed.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]models.InventoryTransaction, error) {
	return s.ledger.Recent(ctx, limit)
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardStats, error) {
	revenue, err := s.sales.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: revenue: %w", err)
	}

	profit, err := s.sales.TotalProfit(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: profit: %w", err)
	}

	var onHand int
	err = s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&onHand).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: on-hand sum: %w", err)
	}

	// "Today" is the store's local midnight, not UTC.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	salesToday, err := s.sales.CountSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("dashboard: sales today: %w", err)
	}

	var lowStock int64
	err = s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("is_active = ? AND quantity <= min_stock_level", true).
		Count(&lowStock).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: low stock count: %w", err)
	}

	return &DashboardStats{
		TotalRevenue:  revenue,
		TotalProfit:   profit,
		TotalOnHand:   onHand,
		SalesToday:    salesToday,
		LowStockItems: lowStock,
		GeneratedAt:   now,
	}, nil
}
