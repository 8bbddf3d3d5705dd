package models

import "gorm.io/gorm"

// Supplier is an optional source reference for inventory items.
type Supplier struct {
	gorm.Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Contact string `gorm:"size:255"          json:"contact"`
	Notes   string `gorm:"type:text"         json:"notes"`
}
