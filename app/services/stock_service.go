package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/cache"
	"github.com/shashiranjanraj/tillpoint/pkg/event"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event names fired after a committed stock mutation.
const (
	EventStockChanged = "stock.changed"
	EventStockLow     = "stock.low"
)

// StockChangedEvent is the payload for EventStockChanged and EventStockLow.
type StockChangedEvent struct {
	Item            models.InventoryItem
	TransactionType string
	Delta           int
}

// SaleInput is the validated request for RecordSale.
type SaleInput struct {
	ItemID        uint
	AssociateID   uint
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentMethod string
	OrderNumber   string
}

// StockService owns every change to InventoryItem.Quantity.
//
// All three mutation entry points (sale, addition, adjustment) run the
// counter update and the ledger append inside one database transaction, so a
// failure on either side persists neither. Deductions use a conditional
// UPDATE guarded by `quantity >= ?`, which is also the concurrency guard: two
// racing sales of the last unit resolve to one success and one
// ErrInsufficientStock, never a negative counter.
type StockService struct {
	db *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// AddStock increases the on-hand counter and appends an "addition" ledger row.
func (s *StockService) AddStock(ctx context.Context, itemID uint, qty int, reason, notes string, actorID *uint) (*models.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if reason == "" {
		reason = "restock"
	}

	item, err := s.mutate(ctx, itemID, +qty, models.TransactionAddition, reason, notes, actorID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustInventory removes stock for damage, loss, or correction.
//
// Adjustments are deduction-only: corrections that increase stock always
// route through AddStock, so the ledger keeps a single meaning per
// transaction type.
func (s *StockService) AdjustInventory(ctx context.Context, itemID uint, qty int, reason, notes string, actorID *uint) (*models.InventoryItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if reason == "" {
		reason = "adjustment"
	}

	item, err := s.mutate(ctx, itemID, -qty, models.TransactionAdjustment, reason, notes, actorID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RecordSale decrements stock, appends a "sale" ledger row, and creates the
// Sale line item, all in one transaction.
func (s *StockService) RecordSale(ctx context.Context, in SaleInput) (*models.Sale, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !in.TotalAmount.Equal(in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))) {
		return nil, ErrTotalMismatch
	}

	orderNumber := in.OrderNumber
	if orderNumber == "" {
		orderNumber = NewOrderNumber()
	}

	sale := models.Sale{
		OrderNumber:   orderNumber,
		ItemID:        in.ItemID,
		AssociateID:   in.AssociateID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TotalAmount:   in.TotalAmount,
		PaymentMethod: in.PaymentMethod,
	}

	actor := in.AssociateID
	var after models.InventoryItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.applyDelta(tx, in.ItemID, -in.Quantity, models.TransactionSale, "sale", "", &actor)
		if err != nil {
			return err
		}
		after = *item

		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("stock: create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		s.recordOutcome(models.TransactionSale, err)
		return nil, err
	}

	metrics.StockMutations.WithLabelValues(models.TransactionSale, "ok").Inc()
	metrics.SalesRecorded.WithLabelValues(in.PaymentMethod).Inc()
	s.afterCommit(ctx, after, models.TransactionSale, -in.Quantity)

	return &sale, nil
}

// Archive soft-deletes an item. Archiving an already-archived item is a
// no-op: no counter change, no ledger row.
func (s *StockService) Archive(ctx context.Context, itemID uint) (*models.InventoryItem, error) {
	return s.setActive(ctx, itemID, false)
}

// Restore reactivates an archived item. Idempotent like Archive.
func (s *StockService) Restore(ctx context.Context, itemID uint) (*models.InventoryItem, error) {
	return s.setActive(ctx, itemID, true)
}

// Drift is one item whose counter disagrees with its ledger sum.
type Drift struct {
	ItemID     uint `json:"itemId"`
	Counter    int  `json:"counter"`
	LedgerSum  int  `json:"ledgerSum"`
	Difference int  `json:"difference"`
}

// Reconcile recomputes every item's counter from the ledger and reports the
// items that drifted. With repair=true the counter is reset to the ledger
// sum inside the same scan.
//
// The ledger records deltas, not absolutes, so an item seeded with opening
// stock outside the ledger will legitimately differ by its opening quantity;
// Reconcile is an auditing tool, not an automatic truth source.
func (s *StockService) Reconcile(ctx context.Context, repair bool) ([]Drift, error) {
	type row struct {
		ItemID   uint
		Quantity int
		Sum      int
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("inventory_items.id as item_id, inventory_items.quantity as quantity, COALESCE(SUM(inventory_transactions.quantity), 0) as sum").
		Joins("LEFT JOIN inventory_transactions ON inventory_transactions.item_id = inventory_items.id").
		Group("inventory_items.id, inventory_items.quantity").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stock: reconcile scan: %w", err)
	}

	var drifts []Drift
	for _, r := range rows {
		if r.Quantity == r.Sum {
			continue
		}
		drifts = append(drifts, Drift{
			ItemID:     r.ItemID,
			Counter:    r.Quantity,
			LedgerSum:  r.Sum,
			Difference: r.Quantity - r.Sum,
		})
	}

	if repair && len(drifts) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, d := range drifts {
				res := tx.Model(&models.InventoryItem{}).
					Where("id = ?", d.ItemID).
					Update("quantity", d.LedgerSum)
				if res.Error != nil {
					return fmt.Errorf("stock: repair item %d: %w", d.ItemID, res.Error)
				}
			}
			return nil
		})
		if err != nil {
			return drifts, err
		}
		logger.Warn("stock: reconcile repaired drifted counters", "items", len(drifts))
	}

	return drifts, nil
}

// NewOrderNumber mints a register order number. Line items sold together
// share one.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// ── internals ────────────────────────────────────────────────────────────────

// mutate wraps applyDelta in its own transaction for the add-stock and adjust
// paths, then handles metrics and post-commit events.
func (s *StockService) mutate(ctx context.Context, itemID uint, delta int, txType, reason, notes string, actorID *uint) (*models.InventoryItem, error) {
	var after models.InventoryItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.applyDelta(tx, itemID, delta, txType, reason, notes, actorID)
		if err != nil {
			return err
		}
		after = *item
		return nil
	})
	if err != nil {
		s.recordOutcome(txType, err)
		return nil, err
	}

	metrics.StockMutations.WithLabelValues(txType, "ok").Inc()
	s.afterCommit(ctx, after, txType, delta)
	return &after, nil
}

// applyDelta performs the conditional counter update plus the ledger append.
// Must be called inside a transaction. delta is signed; deductions carry the
// `quantity >= ?` guard so the counter can never go negative.
func (s *StockService) applyDelta(tx *gorm.DB, itemID uint, delta int, txType, reason, notes string, actorID *uint) (*models.InventoryItem, error) {
	query := tx.Model(&models.InventoryItem{}).
		Where("id = ? AND is_active = ?", itemID, true)
	if delta < 0 {
		query = query.Where("quantity >= ?", -delta)
	}

	res := query.Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, fmt.Errorf("stock: update counter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.classifyRejection(tx, itemID)
	}

	ledger := models.InventoryTransaction{
		ItemID:          itemID,
		TransactionType: txType,
		Quantity:        delta,
		Reason:          reason,
		Notes:           notes,
		CorrelationID:   uuid.NewString(),
		AssociateID:     actorID,
	}
	if err := tx.Create(&ledger).Error; err != nil {
		return nil, fmt.Errorf("stock: ledger append: %w", err)
	}

	var item models.InventoryItem
	if err := tx.First(&item, itemID).Error; err != nil {
		return nil, fmt.Errorf("stock: reload item: %w", err)
	}
	return &item, nil
}

// classifyRejection turns a zero-rows-affected update into the precise
// domain error: missing item, archived item, or not enough stock.
func (s *StockService) classifyRejection(tx *gorm.DB, itemID uint) error {
	var item models.InventoryItem
	err := tx.First(&item, itemID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrItemNotFound
	case err != nil:
		return fmt.Errorf("stock: classify rejection: %w", err)
	case !item.IsActive:
		return ErrItemArchived
	default:
		return ErrInsufficientStock
	}
}

func (s *StockService) setActive(ctx context.Context, itemID uint, active bool) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("stock: load item: %w", err)
	}

	if item.IsActive == active {
		return &item, nil // idempotent flip
	}

	if err := s.db.WithContext(ctx).Model(&item).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("stock: set active: %w", err)
	}
	item.IsActive = active

	if !active {
		event.Fire("item.archived", item)
	}
	_ = cache.Forget("dashboard:stats")
	return &item, nil
}

func (s *StockService) recordOutcome(txType string, err error) {
	metrics.StockMutations.WithLabelValues(txType, "rejected").Inc()
	if errors.Is(err, ErrInsufficientStock) {
		metrics.OversellRejections.Inc()
	}
}

// afterCommit fires events and invalidates the dashboard cache once the
// transaction is durable.
func (s *StockService) afterCommit(ctx context.Context, item models.InventoryItem, txType string, delta int) {
	_ = cache.Forget("dashboard:stats")

	payload := StockChangedEvent{Item: item, TransactionType: txType, Delta: delta}
	event.Fire(EventStockChanged, payload)

	if item.Quantity <= item.MinStockLevel {
		event.Fire(EventStockLow, payload)
	}

	logger.WithCtx(ctx).Info("stock: mutation committed",
		"item_id", item.ID,
		"sku", item.SKU,
		"type", txType,
		"delta", delta,
		"quantity", item.Quantity,
	)
}
