package models

import "gorm.io/gorm"

// Category dimensions an InventoryItem attribute can be constrained by.
var CategoryTypes = []string{"type", "color", "size", "design", "groupType", "styleGroup"}

// Category is one allowed value for a category dimension, e.g.
// {Type: "color", Value: "Blue"}. Values are presented to the client ordered
// by DisplayOrder, which stays dense among active siblings: soft-deleting a
// value re-numbers the survivors.
type Category struct {
	gorm.Model
	Type         string `gorm:"size:50;not null;index:idx_categories_type_value" json:"type"`
	Value        string `gorm:"size:100;not null;index:idx_categories_type_value" json:"value"`
	DisplayOrder int    `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool   `gorm:"not null;default:true;index" json:"isActive"`
}
