package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is one sellable catalog entry.
//
// Quantity is the authoritative on-hand counter. Every change to it is paired
// with exactly one InventoryTransaction row; the pairing is enforced by
// services.StockService, which is the only writer of this column.
type InventoryItem struct {
	gorm.Model
	SKU         string `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Name        string `gorm:"size:255;not null;index"      json:"name"`
	Description string `gorm:"type:text"                    json:"description"`

	// Descriptive attributes, optionally constrained by Category values.
	Type       string `gorm:"size:100;index" json:"type"`
	Size       string `gorm:"size:50"        json:"size"`
	Color      string `gorm:"size:100"       json:"color"`
	Design     string `gorm:"size:100"       json:"design"`
	GroupType  string `gorm:"size:100"       json:"groupType"`
	StyleGroup string `gorm:"size:100"       json:"styleGroup"`

	Price decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost  *decimal.Decimal `gorm:"type:decimal(10,2)"          json:"cost"`

	// Never negative at rest; decremented only via the conditional UPDATE in
	// the stock service.
	Quantity      int `gorm:"not null;default:0" json:"quantity"`
	MinStockLevel int `gorm:"not null;default:0" json:"minStockLevel"`

	// Soft delete: archived items stay referenceable by ledger rows and sales.
	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`

	SupplierID *uint     `gorm:"index" json:"supplierId"`
	Supplier   *Supplier `json:"supplier,omitempty"`
}
