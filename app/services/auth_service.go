package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/auth"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"gorm.io/gorm"
)

// AuthService exchanges an associate code for a bearer token.
//
// Codes are short shared secrets, not passwords: login checks the submitted
// code against every active associate's bcrypt hash, so codes must be unique
// across staff. CreateAssociate enforces that by probing before hashing.
type AuthService struct {
	db         *gorm.DB
	associates *repositories.AssociateRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:         db,
		associates: repositories.NewAssociateRepository(db),
	}
}

// Login finds the active associate whose code hash matches and issues a JWT.
func (s *AuthService) Login(ctx context.Context, code string) (string, *models.Associate, error) {
	if code == "" {
		return "", nil, ErrInvalidCredentials
	}

	active, err := s.associates.Active(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("auth: load associates: %w", err)
	}

	for i := range active {
		a := &active[i]
		if auth.CheckCode(a.CodeHash, code) {
			token, err := auth.GenerateToken(a.ID, a.Role)
			if err != nil {
				return "", nil, fmt.Errorf("auth: sign token: %w", err)
			}
			logger.WithCtx(ctx).Info("auth: associate logged in", "associate_id", a.ID)
			return token, a, nil
		}
	}

	return "", nil, ErrInvalidCredentials
}

// CreateAssociate registers a new staff member with a hashed code. The plain
// code is never stored.
func (s *AuthService) CreateAssociate(ctx context.Context, name, code, role string) (*models.Associate, error) {
	if role == "" {
		role = models.RoleAssociate
	}

	if taken, err := s.codeInUse(ctx, code); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("auth: associate code already in use")
	}

	hash, err := auth.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth: hash code: %w", err)
	}

	a := models.Associate{
		Name:     name,
		CodeHash: hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.associates.Create(ctx, &a); err != nil {
		return nil, fmt.Errorf("auth: create associate: %w", err)
	}
	return &a, nil
}

// ResetCode replaces an associate's login code.
func (s *AuthService) ResetCode(ctx context.Context, id uint, code string) error {
	if taken, err := s.codeInUse(ctx, code); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("auth: associate code already in use")
	}

	hash, err := auth.HashCode(code)
	if err != nil {
		return fmt.Errorf("auth: hash code: %w", err)
	}

	return s.db.WithContext(ctx).
		Model(&models.Associate{}).
		Where("id = ?", id).
		Update("code_hash", hash).Error
}

func (s *AuthService) codeInUse(ctx context.Context, code string) (bool, error) {
	active, err := s.associates.Active(ctx)
	if err != nil {
		return false, fmt.Errorf("auth: load associates: %w", err)
	}
	for i := range active {
		if auth.CheckCode(active[i].CodeHash, code) {
			return true, nil
		}
	}
	return false, nil
}
