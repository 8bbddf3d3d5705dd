package seeders

import (
	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("categories", SeedCategories)
	Register("admin", SeedAdminAssociate)
}

// defaultCategories is the out-of-the-box category catalog for a clothing
// shop. Owners edit these through the admin API.
var defaultCategories = map[string][]string{
	"type":       {"Shirt", "Pants", "Dress", "Hat", "Accessory"},
	"color":      {"Black", "White", "Blue", "Red", "Green"},
	"size":       {"XS", "S", "M", "L", "XL"},
	"design":     {"Plain", "Solid", "Striped", "Graphic"},
	"groupType":  {"General", "Seasonal", "Clearance"},
	"styleGroup": {"Tee", "Polo", "Hoodie"},
}

// SeedCategories inserts the default values, skipping any dimension that
// already has rows so re-running the seeder never duplicates.
func SeedCategories(db *gorm.DB) error {
	for _, dimension := range models.CategoryTypes {
		var count int64
		if err := db.Model(&models.Category{}).Where("type = ?", dimension).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for i, value := range defaultCategories[dimension] {
			cat := models.Category{
				Type:         dimension,
				Value:        value,
				DisplayOrder: i,
				IsActive:     true,
			}
			if err := db.Create(&cat).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedAdminAssociate creates the initial admin with code "0000". Change the
// code immediately after first login.
func SeedAdminAssociate(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Associate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashCode("0000")
	if err != nil {
		return err
	}

	return db.Create(&models.Associate{
		Name:     "Owner",
		CodeHash: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}).Error
}
