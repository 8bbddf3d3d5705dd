package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/pkg/cache"
	"github.com/shashiranjanraj/tillpoint/pkg/collection"
	"github.com/shashiranjanraj/tillpoint/pkg/orm"
	"gorm.io/gorm"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryRepository manages the allowed values for each category dimension.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Find(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ByType returns the active values for one dimension in display order,
// cached read-through since the register UI polls these constantly.
func (r *CategoryRepository) ByType(ctx context.Context, categoryType string) ([]models.Category, error) {
	query := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ?", categoryType, true).
		Order("display_order ASC, id ASC")

	var cats []models.Category
	err := orm.CachedFind(query, "categories:"+categoryType, categoryCacheTTL, &cats)
	return cats, err
}

// All returns every active category value grouped by dimension.
func (r *CategoryRepository) All(ctx context.Context) (map[string][]models.Category, error) {
	var cats []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("type ASC, display_order ASC, id ASC").
		Find(&cats).Error
	if err != nil {
		return nil, err
	}

	return collection.GroupBy(cats, func(c models.Category) string { return c.Type }), nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	if err := r.db.WithContext(ctx).Create(cat).Error; err != nil {
		return err
	}
	return r.invalidate(cat.Type)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	if err := r.db.WithContext(ctx).Save(cat).Error; err != nil {
		return err
	}
	return r.invalidate(cat.Type)
}

// Deactivate soft-deletes a value and re-numbers the surviving siblings so
// DisplayOrder stays dense.
func (r *CategoryRepository) Deactivate(ctx context.Context, id uint) error {
	var cat models.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&cat).Update("is_active", false).Error; err != nil {
			return err
		}
		return renumber(tx, cat.Type)
	})
	if err != nil {
		return err
	}
	return r.invalidate(cat.Type)
}

// Reorder rewrites DisplayOrder for one dimension to match the given id
// sequence. IDs not in the sequence keep their relative order after it.
func (r *CategoryRepository) Reorder(ctx context.Context, categoryType string, ids []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&models.Category{}).
				Where("id = ? AND type = ?", id, categoryType).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
		}
		return renumber(tx, categoryType)
	})
	if err != nil {
		return err
	}
	return r.invalidate(categoryType)
}

func renumber(tx *gorm.DB, categoryType string) error {
	var cats []models.Category
	err := tx.Where("type = ? AND is_active = ?", categoryType, true).
		Order("display_order ASC, id ASC").
		Find(&cats).Error
	if err != nil {
		return err
	}

	for i, c := range cats {
		if c.DisplayOrder == i {
			continue
		}
		if err := tx.Model(&c).Update("display_order", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) invalidate(categoryType string) error {
	return cache.Forget("categories:" + categoryType)
}
