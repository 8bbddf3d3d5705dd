package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/orm"
	"gorm.io/gorm"
)

// LedgerRepository reads the append-only inventory transaction log. Writes
// happen only inside the stock service's transactions, so there is no Create
// here.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ForItem returns an item's ledger newest first.
func (r *LedgerRepository) ForItem(ctx context.Context, itemID uint, page, perPage int) ([]models.InventoryTransaction, orm.Pagination, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("item_id = ?", itemID).
		Preload("Associate").
		Order("created_at DESC, id DESC")

	var txs []models.InventoryTransaction
	p, err := orm.Paginate(query, &txs, page, perPage)
	return txs, p, err
}

// Recent returns the latest ledger rows across all items, for the activity
// feed on the dashboard.
func (r *LedgerRepository) Recent(ctx context.Context, limit int) ([]models.InventoryTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var txs []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Preload("Item").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// SumForItem is the ledger-side quantity for one item: the signed sum of all
// its transactions.
func (r *LedgerRepository) SumForItem(ctx context.Context, itemID uint) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, err
}

// CountSince counts ledger rows created at or after the cutoff, optionally
// restricted to one transaction type.
func (r *LedgerRepository) CountSince(ctx context.Context, txType string, since time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("created_at >= ?", since)
	if txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
