package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted at the register.
const (
	PaymentCash  = "cash"
	PaymentVenmo = "venmo"
)

// Sale is one line item sold. Line items purchased together share an
// OrderNumber. Rows are immutable once created; there is no update or
// delete path.
type Sale struct {
	gorm.Model
	OrderNumber string `gorm:"size:40;not null;index" json:"orderNumber"`

	ItemID uint           `gorm:"not null;index" json:"itemId"`
	Item   *InventoryItem `json:"item,omitempty"`

	AssociateID uint       `gorm:"not null;index" json:"salesAssociateId"`
	Associate   *Associate `json:"associate,omitempty"`

	Quantity      int             `gorm:"not null"                    json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	PaymentMethod string          `gorm:"size:20;not null"            json:"paymentMethod"`
}
