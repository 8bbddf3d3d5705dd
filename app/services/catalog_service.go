package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateItemInput is the validated request for creating a catalog item. Name
// and SKU may be omitted; both are generated from the category selection.
type CreateItemInput struct {
	Name        string
	SKU         string
	Description string
	Type        string
	Size        string
	Color       string
	Design      string
	GroupType   string
	StyleGroup  string
	Price       decimal.Decimal
	Cost        *decimal.Decimal
	Quantity    int
	MinStock    int
	SupplierID  *uint
	CreatedBy   *uint
}

// CatalogService creates and updates inventory items. Opening stock supplied
// at creation time goes through the stock service so the ledger explains it.
type CatalogService struct {
	db         *gorm.DB
	items      *repositories.ItemRepository
	categories *repositories.CategoryRepository
	stock      *StockService
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:         db,
		items:      repositories.NewItemRepository(db),
		categories: repositories.NewCategoryRepository(db),
		stock:      NewStockService(db),
	}
}

// CreateItem validates the category selection, fills in a generated name and
// unique SKU where omitted, creates the item at quantity zero, then books the
// opening stock through AddStock so it lands in the ledger.
func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (*models.InventoryItem, error) {
	attrs := ItemAttributes{
		Type:       in.Type,
		Size:       in.Size,
		Color:      in.Color,
		Design:     in.Design,
		GroupType:  in.GroupType,
		StyleGroup: in.StyleGroup,
	}

	if errs := s.validateAttributes(ctx, attrs); len(errs) > 0 {
		return nil, &AttributeError{Fields: errs}
	}

	name := in.Name
	if name == "" {
		name = GenerateName(attrs)
	}

	sku := in.SKU
	if sku == "" {
		generated, err := GenerateUniqueSKU(ctx, s.db, attrs)
		if err != nil {
			return nil, err
		}
		sku = generated
	}

	item := models.InventoryItem{
		SKU:           sku,
		Name:          name,
		Description:   in.Description,
		Type:          in.Type,
		Size:          in.Size,
		Color:         in.Color,
		Design:        in.Design,
		GroupType:     in.GroupType,
		StyleGroup:    in.StyleGroup,
		Price:         in.Price,
		Cost:          in.Cost,
		Quantity:      0,
		MinStockLevel: in.MinStock,
		IsActive:      true,
		SupplierID:    in.SupplierID,
	}

	if err := s.items.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("catalog: create item: %w", err)
	}

	if in.Quantity > 0 {
		updated, err := s.stock.AddStock(ctx, item.ID, in.Quantity, "opening stock", "", in.CreatedBy)
		if err != nil {
			// The item row exists but has no stock; surface the ledger failure.
			return nil, fmt.Errorf("catalog: opening stock for item %d: %w", item.ID, err)
		}
		item = *updated
	}

	logger.WithCtx(ctx).Info("catalog: item created", "item_id", item.ID, "sku", item.SKU)
	return &item, nil
}

// UpdateItem persists descriptive and commercial changes. Stock and
// archive state are managed elsewhere and ignored here.
func (s *CatalogService) UpdateItem(ctx context.Context, id uint, in CreateItemInput) (*models.InventoryItem, error) {
	item, err := s.items.Find(ctx, id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	attrs := ItemAttributes{
		Type:       in.Type,
		Size:       in.Size,
		Color:      in.Color,
		Design:     in.Design,
		GroupType:  in.GroupType,
		StyleGroup: in.StyleGroup,
	}
	if errs := s.validateAttributes(ctx, attrs); len(errs) > 0 {
		return nil, &AttributeError{Fields: errs}
	}

	item.Name = in.Name
	if item.Name == "" {
		item.Name = GenerateName(attrs)
	}
	item.Description = in.Description
	item.Type = in.Type
	item.Size = in.Size
	item.Color = in.Color
	item.Design = in.Design
	item.GroupType = in.GroupType
	item.StyleGroup = in.StyleGroup
	item.Price = in.Price
	item.Cost = in.Cost
	item.MinStockLevel = in.MinStock
	item.SupplierID = in.SupplierID

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("catalog: update item %d: %w", id, err)
	}
	return item, nil
}

// AttributeError reports attribute values not present in the category store.
type AttributeError struct {
	Fields map[string]string
}

func (e *AttributeError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid item attributes: " + strings.Join(parts, "; ")
}

// validateAttributes checks each non-empty attribute against the active
// values of its category dimension. Dimensions with no configured values
// accept anything, so a fresh install works before categories are seeded.
func (s *CatalogService) validateAttributes(ctx context.Context, attrs ItemAttributes) map[string]string {
	checks := map[string]string{
		"type":       attrs.Type,
		"size":       attrs.Size,
		"color":      attrs.Color,
		"design":     attrs.Design,
		"groupType":  attrs.GroupType,
		"styleGroup": attrs.StyleGroup,
	}

	errs := make(map[string]string)
	for dimension, value := range checks {
		if value == "" {
			continue
		}
		cats, err := s.categories.ByType(ctx, dimension)
		if err != nil || len(cats) == 0 {
			continue
		}
		if !containsValue(cats, value) {
			errs[dimension] = fmt.Sprintf("%q is not an allowed %s", value, dimension)
		}
	}
	return errs
}

func containsValue(cats []models.Category, value string) bool {
	for _, c := range cats {
		if strings.EqualFold(c.Value, value) {
			return true
		}
	}
	return false
}
