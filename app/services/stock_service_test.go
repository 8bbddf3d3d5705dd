package services_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Associate{},
		&models.InventoryItem{},
		&models.InventoryTransaction{},
		&models.Sale{},
	))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, quantity, minStock int) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		SKU:           "SHI-BLU-MD-001",
		Name:          "Blue Shirt (M)",
		Price:         decimal.NewFromFloat(19.99),
		Quantity:      0,
		MinStockLevel: minStock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(item).Error)

	if quantity > 0 {
		stock := services.NewStockService(db)
		updated, err := stock.AddStock(context.Background(), item.ID, quantity, "opening stock", "", nil)
		require.NoError(t, err)
		return updated
	}
	return item
}

func ledgerSum(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()

	var sum int
	require.NoError(t, db.Model(&models.InventoryTransaction{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error)
	return sum
}

func currentQuantity(t *testing.T, db *gorm.DB, itemID uint) int {
	t.Helper()

	var item models.InventoryItem
	require.NoError(t, db.First(&item, itemID).Error)
	return item.Quantity
}

func TestStockService_MutationSequenceKeepsLedgerInvariant(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	ctx := context.Background()

	item := seedItem(t, db, 10, 5)

	updated, err := stock.AddStock(ctx, item.ID, 20, "restock", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Quantity)

	sale, err := stock.RecordSale(ctx, services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      5,
		UnitPrice:     decimal.NewFromFloat(19.99),
		TotalAmount:   decimal.NewFromFloat(99.95),
		PaymentMethod: models.PaymentCash,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sale.OrderNumber)
	assert.Equal(t, 25, currentQuantity(t, db, item.ID))

	updated, err = stock.AdjustInventory(ctx, item.ID, 3, "damaged", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 22, updated.Quantity)

	// quantity == ledger sum, since opening stock went through the ledger too
	assert.Equal(t, 22, ledgerSum(t, db, item.ID))
	assert.Equal(t, 22, currentQuantity(t, db, item.ID))

	var types []string
	require.NoError(t, db.Model(&models.InventoryTransaction{}).
		Where("item_id = ?", item.ID).
		Order("id ASC").
		Pluck("transaction_type", &types).Error)
	assert.Equal(t, []string{
		models.TransactionAddition,
		models.TransactionAddition,
		models.TransactionSale,
		models.TransactionAdjustment,
	}, types)
}

func TestStockService_OversellRejectedWithoutLedgerRow(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	item := seedItem(t, db, 10, 0)

	before := ledgerSum(t, db, item.ID)

	_, err := stock.RecordSale(context.Background(), services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      100,
		UnitPrice:     decimal.NewFromInt(1),
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: models.PaymentCash,
	})
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	assert.Equal(t, 10, currentQuantity(t, db, item.ID))
	assert.Equal(t, before, ledgerSum(t, db, item.ID))

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)
}

func TestStockService_InvalidQuantityRejectedBeforeStorage(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	item := seedItem(t, db, 5, 0)
	ctx := context.Background()

	for _, qty := range []int{0, -3} {
		_, err := stock.AddStock(ctx, item.ID, qty, "", "", nil)
		assert.ErrorIs(t, err, services.ErrInvalidQuantity)

		_, err = stock.AdjustInventory(ctx, item.ID, qty, "", "", nil)
		assert.ErrorIs(t, err, services.ErrInvalidQuantity)

		_, err = stock.RecordSale(ctx, services.SaleInput{ItemID: item.ID, Quantity: qty})
		assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	}

	assert.Equal(t, 5, currentQuantity(t, db, item.ID))
}

func TestStockService_TotalMismatchRejected(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	item := seedItem(t, db, 5, 0)

	_, err := stock.RecordSale(context.Background(), services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      2,
		UnitPrice:     decimal.NewFromInt(10),
		TotalAmount:   decimal.NewFromInt(25), // should be 20
		PaymentMethod: models.PaymentCash,
	})
	require.ErrorIs(t, err, services.ErrTotalMismatch)
	assert.Equal(t, 5, currentQuantity(t, db, item.ID))
}

func TestStockService_MissingItem(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)

	_, err := stock.AddStock(context.Background(), 9999, 1, "", "", nil)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestStockService_ArchiveIsIdempotentAndBlocksMutations(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	ctx := context.Background()
	item := seedItem(t, db, 10, 0)

	ledgerBefore := ledgerSum(t, db, item.ID)

	archived, err := stock.Archive(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, archived.IsActive)

	// Archiving again is a no-op: no counter change, no ledger row.
	again, err := stock.Archive(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
	assert.Equal(t, 10, currentQuantity(t, db, item.ID))
	assert.Equal(t, ledgerBefore, ledgerSum(t, db, item.ID))

	// Archived items reject every mutation path.
	_, err = stock.AddStock(ctx, item.ID, 1, "", "", nil)
	assert.ErrorIs(t, err, services.ErrItemArchived)

	_, err = stock.AdjustInventory(ctx, item.ID, 1, "", "", nil)
	assert.ErrorIs(t, err, services.ErrItemArchived)

	_, err = stock.RecordSale(ctx, services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(1),
		TotalAmount:   decimal.NewFromInt(1),
		PaymentMethod: models.PaymentCash,
	})
	assert.ErrorIs(t, err, services.ErrItemArchived)

	// Restore twice: second call is a no-op too.
	restored, err := stock.Restore(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	restored, err = stock.Restore(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Equal(t, ledgerBefore, ledgerSum(t, db, item.ID))

	// Mutations work again after restore.
	updated, err := stock.AddStock(ctx, item.ID, 2, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)
}

func TestStockService_LedgerFailureRollsBackCounter(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	item := seedItem(t, db, 10, 0)

	// Fault injection: with the ledger table gone the append must fail, and
	// the counter update in the same transaction must roll back with it.
	require.NoError(t, db.Migrator().DropTable(&models.InventoryTransaction{}))

	_, err := stock.AddStock(context.Background(), item.ID, 5, "", "", nil)
	require.Error(t, err)

	assert.Equal(t, 10, currentQuantity(t, db, item.ID))
}

func TestStockService_ConcurrentOversellHasOneWinner(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	item := seedItem(t, db, 1, 0)

	input := services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(5),
		TotalAmount:   decimal.NewFromInt(5),
		PaymentMethod: models.PaymentCash,
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = stock.RecordSale(context.Background(), input)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one sale must win")
	assert.Equal(t, 1, rejected, "the loser must be rejected")

	assert.Equal(t, 0, currentQuantity(t, db, item.ID), "quantity must never go negative")

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.EqualValues(t, 1, saleCount)
}

func TestStockService_ReconcileDetectsAndRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	ctx := context.Background()
	item := seedItem(t, db, 10, 0)

	drifts, err := stock.Reconcile(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, drifts, "fresh item must not drift")

	// Corrupt the counter behind the service's back.
	require.NoError(t, db.Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Update("quantity", 42).Error)

	drifts, err = stock.Reconcile(ctx, false)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, item.ID, drifts[0].ItemID)
	assert.Equal(t, 42, drifts[0].Counter)
	assert.Equal(t, 10, drifts[0].LedgerSum)

	_, err = stock.Reconcile(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 10, currentQuantity(t, db, item.ID))
}
