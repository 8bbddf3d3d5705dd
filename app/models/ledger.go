package models

import (
	"time"
)

// Transaction types recorded in the inventory ledger.
const (
	TransactionAddition   = "addition"
	TransactionSale       = "sale"
	TransactionAdjustment = "adjustment"
)

// InventoryTransaction is one append-only ledger row explaining a quantity
// change. Rows are never updated or deleted; the sum of Quantity per item is
// the audit trail for how the item counter arrived at its current value.
//
// Quantity is signed: positive for stock added, negative for stock removed
// (sales and adjustments are both recorded negative).
type InventoryTransaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"     json:"createdAt"`

	ItemID uint           `gorm:"not null;index" json:"itemId"`
	Item   *InventoryItem `json:"item,omitempty"`

	TransactionType string `gorm:"size:20;not null;index" json:"transactionType"`
	Quantity        int    `gorm:"not null"               json:"quantity"`
	Reason          string `gorm:"size:255"               json:"reason"`
	Notes           string `gorm:"type:text"              json:"notes"`

	// Correlates the ledger row with the mutation request that produced it.
	CorrelationID string `gorm:"size:36;index" json:"correlationId"`

	AssociateID *uint      `gorm:"index" json:"associateId"`
	Associate   *Associate `json:"associate,omitempty"`
}
