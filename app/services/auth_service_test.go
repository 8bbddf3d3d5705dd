package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/auth"
)

func TestAuthService_LoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	created, err := svc.CreateAssociate(ctx, "Alex", "4321", models.RoleAssociate)
	require.NoError(t, err)
	assert.NotEqual(t, "4321", created.CodeHash, "plain code must never be stored")

	token, associate, err := svc.Login(ctx, "4321")
	require.NoError(t, err)
	assert.Equal(t, created.ID, associate.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.AssociateID)
	assert.Equal(t, models.RoleAssociate, claims.Role)
}

func TestAuthService_LoginRejectsWrongCode(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	_, err := svc.CreateAssociate(ctx, "Alex", "4321", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "9999")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginIgnoresInactiveAssociates(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	created, err := svc.CreateAssociate(ctx, "Former", "4321", "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Associate{}).
		Where("id = ?", created.ID).
		Update("is_active", false).Error)

	_, _, err = svc.Login(ctx, "4321")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_DuplicateCodeRejected(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	_, err := svc.CreateAssociate(ctx, "Alex", "4321", "")
	require.NoError(t, err)

	_, err = svc.CreateAssociate(ctx, "Sam", "4321", "")
	assert.Error(t, err, "codes must stay unique across active staff")
}

func TestAuthService_ResetCode(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)
	ctx := context.Background()

	created, err := svc.CreateAssociate(ctx, "Alex", "4321", "")
	require.NoError(t, err)

	require.NoError(t, svc.ResetCode(ctx, created.ID, "8765"))

	_, _, err = svc.Login(ctx, "4321")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, associate, err := svc.Login(ctx, "8765")
	require.NoError(t, err)
	assert.Equal(t, created.ID, associate.ID)
}
