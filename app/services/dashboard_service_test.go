package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
)

func TestDashboardService_Stats(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	dashboard := services.NewDashboardService(db)
	ctx := context.Background()

	cost := decimal.NewFromInt(4)
	item := &models.InventoryItem{
		SKU:           "TEE-BLK-MD-100",
		Name:          "Black Tee (M)",
		Price:         decimal.NewFromInt(10),
		Cost:          &cost,
		MinStockLevel: 3,
		IsActive:      true,
	}
	require.NoError(t, db.Create(item).Error)

	_, err := stock.AddStock(ctx, item.ID, 10, "opening stock", "", nil)
	require.NoError(t, err)

	// Two sales today: 2 + 3 units at 10 each.
	for _, qty := range []int{2, 3} {
		_, err := stock.RecordSale(ctx, services.SaleInput{
			ItemID:        item.ID,
			AssociateID:   1,
			Quantity:      qty,
			UnitPrice:     decimal.NewFromInt(10),
			TotalAmount:   decimal.NewFromInt(int64(qty * 10)),
			PaymentMethod: models.PaymentCash,
		})
		require.NoError(t, err)
	}

	stats, err := dashboard.Stats(ctx)
	require.NoError(t, err)

	// revenue = 20 + 30; profit = revenue - (2+3)*cost(4) = 50 - 20
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(50)), "revenue = %s", stats.TotalRevenue)
	assert.True(t, stats.TotalProfit.Equal(decimal.NewFromInt(30)), "profit = %s", stats.TotalProfit)
	assert.Equal(t, 5, stats.TotalOnHand)
	assert.EqualValues(t, 2, stats.SalesToday)
	assert.EqualValues(t, 0, stats.LowStockItems)
}

func TestDashboardService_MissingCostCountsAsZero(t *testing.T) {
	db := newTestDB(t)
	stock := services.NewStockService(db)
	dashboard := services.NewDashboardService(db)
	ctx := context.Background()

	item := &models.InventoryItem{
		SKU:      "HAT-GRN-200",
		Name:     "Green Hat",
		Price:    decimal.NewFromInt(15),
		IsActive: true, // no cost recorded
	}
	require.NoError(t, db.Create(item).Error)

	_, err := stock.AddStock(ctx, item.ID, 5, "", "", nil)
	require.NoError(t, err)

	_, err = stock.RecordSale(ctx, services.SaleInput{
		ItemID:        item.ID,
		AssociateID:   1,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(15),
		TotalAmount:   decimal.NewFromInt(15),
		PaymentMethod: models.PaymentVenmo,
	})
	require.NoError(t, err)

	stats, err := dashboard.Stats(ctx)
	require.NoError(t, err)

	assert.True(t, stats.TotalProfit.Equal(decimal.NewFromInt(15)),
		"missing cost treated as zero, profit = %s", stats.TotalProfit)
}

func TestDashboardService_LowStockCount(t *testing.T) {
	db := newTestDB(t)
	dashboard := services.NewDashboardService(db)

	low := &models.InventoryItem{
		SKU: "A-1", Name: "a", Price: decimal.NewFromInt(1),
		Quantity: 2, MinStockLevel: 5, IsActive: true,
	}
	ok := &models.InventoryItem{
		SKU: "B-1", Name: "b", Price: decimal.NewFromInt(1),
		Quantity: 50, MinStockLevel: 5, IsActive: true,
	}
	archived := &models.InventoryItem{
		SKU: "C-1", Name: "c", Price: decimal.NewFromInt(1),
		Quantity: 0, MinStockLevel: 5, IsActive: true,
	}
	for _, it := range []*models.InventoryItem{low, ok, archived} {
		require.NoError(t, db.Create(it).Error)
	}
	require.NoError(t, db.Model(archived).Update("is_active", false).Error)

	stats, err := dashboard.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.LowStockItems, "archived items are excluded")
	assert.Equal(t, 52, stats.TotalOnHand, "archived stock is excluded from on-hand")
}
