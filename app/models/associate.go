package models

import "gorm.io/gorm"

// Associate roles.
const (
	RoleAdmin     = "admin"
	RoleAssociate = "associate"
)

// Associate is a sales-staff user. Associates authenticate with a short
// associate code instead of a password; only the bcrypt hash of the code is
// stored.
type Associate struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"           json:"name"`
	CodeHash string `gorm:"size:255;not null"           json:"-"`
	Role     string `gorm:"size:50;default:associate"   json:"role"`
	IsActive bool   `gorm:"not null;default:true;index" json:"isActive"`
}
