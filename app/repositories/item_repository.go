package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/orm"
	"gorm.io/gorm"
)

// searchLimit caps the quick-search result set so the register UI stays snappy.
const searchLimit = 10

// ItemFilter narrows List queries. Zero values mean "no filter".
type ItemFilter struct {
	Type            string
	Color           string
	Size            string
	GroupType       string
	IncludeArchived bool
}

// ItemRepository handles reads and non-stock writes for inventory items.
// Quantity never changes here; that column belongs to the stock service.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) Find(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).Preload("Supplier").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("items: find %d: %w", id, err)
	}
	return &item, nil
}

func (r *ItemRepository) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns a page of items matching the filter, newest first. Archived
// items are excluded unless the filter asks for them.
func (r *ItemRepository) List(ctx context.Context, filter ItemFilter, page, perPage int) ([]models.InventoryItem, orm.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Order("created_at DESC")

	if !filter.IncludeArchived {
		query = query.Where("is_active = ?", true)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Color != "" {
		query = query.Where("color = ?", filter.Color)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if filter.GroupType != "" {
		query = query.Where("group_type = ?", filter.GroupType)
	}

	var items []models.InventoryItem
	p, err := orm.Paginate(query, &items, page, perPage)
	return items, p, err
}

// Search does a partial case-insensitive match across the descriptive
// columns, capped at searchLimit rows. Archived items are excluded.
func (r *ItemRepository) Search(ctx context.Context, term string) ([]models.InventoryItem, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(`LOWER(sku) LIKE ? OR LOWER(name) LIKE ? OR LOWER(description) LIKE ?
			OR LOWER(type) LIKE ? OR LOWER(color) LIKE ? OR LOWER(design) LIKE ?
			OR LOWER(group_type) LIKE ? OR LOWER(style_group) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern).
		Limit(searchLimit).
		Find(&items).Error
	return items, err
}

// LowStock lists active items at or below their reorder threshold.
func (r *ItemRepository) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND quantity <= min_stock_level", true).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

// Update persists the descriptive and commercial columns. Quantity and
// IsActive are deliberately omitted from the column list.
func (r *ItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Model(item).
		Select("name", "description", "type", "size", "color", "design",
			"group_type", "style_group", "price", "cost", "min_stock_level", "supplier_id").
		Updates(item).Error
}
