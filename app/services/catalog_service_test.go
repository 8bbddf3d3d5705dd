package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
)

func seedCategories(t *testing.T, db *gorm.DB) {
	t.Helper()

	values := map[string][]string{
		"type":  {"Shirt", "Hat"},
		"color": {"Blue", "Red"},
		"size":  {"S", "M", "L"},
	}
	for dimension, vals := range values {
		for i, v := range vals {
			require.NoError(t, db.Create(&models.Category{
				Type: dimension, Value: v, DisplayOrder: i, IsActive: true,
			}).Error)
		}
	}
}

func TestCatalogService_CreateItemGeneratesNameAndSKU(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	catalog := services.NewCatalogService(db)

	item, err := catalog.CreateItem(context.Background(), services.CreateItemInput{
		Type:     "Shirt",
		Color:    "Blue",
		Size:     "M",
		Price:    decimal.NewFromFloat(19.99),
		Quantity: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Blue Shirt (M)", item.Name)
	assert.Regexp(t, `^SHI-BLU-MD-\d{3}$`, item.SKU)
	assert.Equal(t, 10, item.Quantity)
	assert.True(t, item.IsActive)

	// Opening stock must be explained by the ledger.
	var tx models.InventoryTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&tx).Error)
	assert.Equal(t, models.TransactionAddition, tx.TransactionType)
	assert.Equal(t, 10, tx.Quantity)
	assert.Equal(t, "opening stock", tx.Reason)
}

func TestCatalogService_CreateItemRejectsUnknownAttribute(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	catalog := services.NewCatalogService(db)

	_, err := catalog.CreateItem(context.Background(), services.CreateItemInput{
		Type:  "Couch", // not in the type dimension
		Color: "Blue",
		Price: decimal.NewFromInt(5),
	})
	require.Error(t, err)

	var attrErr *services.AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Contains(t, attrErr.Fields, "type")
}

func TestCatalogService_UnconstrainedDimensionAcceptsAnything(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db) // no "design" values seeded
	catalog := services.NewCatalogService(db)

	item, err := catalog.CreateItem(context.Background(), services.CreateItemInput{
		Type:   "Hat",
		Color:  "Red",
		Design: "Paisley",
		Price:  decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paisley", item.Design)
}

func TestCatalogService_ExplicitNameAndSKUAreKept(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)

	item, err := catalog.CreateItem(context.Background(), services.CreateItemInput{
		Name:  "Staff Pick Tee",
		SKU:   "CUSTOM-001",
		Price: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Pick Tee", item.Name)
	assert.Equal(t, "CUSTOM-001", item.SKU)
}

func TestCatalogService_UpdateItemDoesNotTouchStock(t *testing.T) {
	db := newTestDB(t)
	catalog := services.NewCatalogService(db)
	ctx := context.Background()

	item, err := catalog.CreateItem(ctx, services.CreateItemInput{
		Name:     "Original",
		SKU:      "ORIG-001",
		Price:    decimal.NewFromInt(10),
		Quantity: 7,
	})
	require.NoError(t, err)

	updated, err := catalog.UpdateItem(ctx, item.ID, services.CreateItemInput{
		Name:  "Renamed",
		Price: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 7, currentQuantity(t, db, item.ID), "update must not change stock")
	assert.Equal(t, "ORIG-001", updated.SKU, "update must not change the SKU")
}
