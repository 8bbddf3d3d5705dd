package repositories

import (
	"context"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"gorm.io/gorm"
)

// AssociateRepository manages the sales-staff directory.
type AssociateRepository struct {
	db *gorm.DB
}

func NewAssociateRepository(db *gorm.DB) *AssociateRepository {
	return &AssociateRepository{db: db}
}

func (r *AssociateRepository) Find(ctx context.Context, id uint) (*models.Associate, error) {
	var a models.Associate
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Active lists associates who can currently log in and sell.
func (r *AssociateRepository) Active(ctx context.Context) ([]models.Associate, error) {
	var out []models.Associate
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// All lists every associate including deactivated ones, for admin screens.
func (r *AssociateRepository) All(ctx context.Context) ([]models.Associate, error) {
	var out []models.Associate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *AssociateRepository) Create(ctx context.Context, a *models.Associate) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssociateRepository) Update(ctx context.Context, a *models.Associate) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Deactivate keeps the row for historical sales but blocks future logins.
func (r *AssociateRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Associate{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
