package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleFilter narrows List queries. A zero time means "no bound".
type SaleFilter struct {
	AssociateID   uint
	ItemID        uint
	PaymentMethod string
	From          time.Time
	To            time.Time
}

// SaleRepository reads the sales record store. Sale rows are created only
// inside the stock service's RecordSale transaction.
type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Find(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Associate").
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// ByOrderNumber returns every line item sharing one register order.
func (r *SaleRepository) ByOrderNumber(ctx context.Context, orderNumber string) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Preload("Item").
		Order("id ASC").
		Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) List(ctx context.Context, filter SaleFilter, page, perPage int) ([]models.Sale, orm.Pagination, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Preload("Item").
		Preload("Associate").
		Order("created_at DESC, id DESC")

	if filter.AssociateID != 0 {
		query = query.Where("associate_id = ?", filter.AssociateID)
	}
	if filter.ItemID != 0 {
		query = query.Where("item_id = ?", filter.ItemID)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	var sales []models.Sale
	p, err := orm.Paginate(query, &sales, page, perPage)
	return sales, p, err
}

// TotalRevenue sums TotalAmount across all sales.
func (r *SaleRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "COALESCE(SUM(total_amount), 0)")
}

// TotalProfit sums totalAmount minus quantity times item cost, treating a
// missing cost as zero.
func (r *SaleRepository) TotalProfit(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Joins("JOIN inventory_items ON inventory_items.id = sales.item_id").
		Select("COALESCE(SUM(sales.total_amount - sales.quantity * COALESCE(inventory_items.cost, 0)), 0)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// CountSince counts sale rows created at or after the cutoff.
func (r *SaleRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *SaleRepository) sumColumn(ctx context.Context, expr string) (decimal.Decimal, error) {
	var raw string
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select(expr).
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}
