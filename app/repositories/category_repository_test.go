package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Associate{},
		&models.InventoryItem{},
		&models.InventoryTransaction{},
		&models.Sale{},
	))
	return db
}

func seedColors(t *testing.T, repo *repositories.CategoryRepository, values ...string) []models.Category {
	t.Helper()

	out := make([]models.Category, 0, len(values))
	for i, v := range values {
		cat := models.Category{Type: "color", Value: v, DisplayOrder: i, IsActive: true}
		require.NoError(t, repo.Create(context.Background(), &cat))
		out = append(out, cat)
	}
	return out
}

func TestCategoryRepository_ByTypeReturnsDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewCategoryRepository(db)

	seedColors(t, repo, "Black", "White", "Blue")

	cats, err := repo.ByType(context.Background(), "color")
	require.NoError(t, err)
	require.Len(t, cats, 3)

	values := []string{cats[0].Value, cats[1].Value, cats[2].Value}
	assert.Equal(t, []string{"Black", "White", "Blue"}, values)
}

func TestCategoryRepository_DeactivateRenumbersSurvivors(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	cats := seedColors(t, repo, "Black", "White", "Blue")

	require.NoError(t, repo.Deactivate(ctx, cats[1].ID)) // remove "White"

	remaining, err := repo.ByType(ctx, "color")
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	// Survivors stay dense: 0, 1 with no gap.
	assert.Equal(t, "Black", remaining[0].Value)
	assert.Equal(t, 0, remaining[0].DisplayOrder)
	assert.Equal(t, "Blue", remaining[1].Value)
	assert.Equal(t, 1, remaining[1].DisplayOrder)
}

func TestCategoryRepository_Reorder(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	cats := seedColors(t, repo, "Black", "White", "Blue")

	require.NoError(t, repo.Reorder(ctx, "color", []uint{cats[2].ID, cats[0].ID, cats[1].ID}))

	reordered, err := repo.ByType(ctx, "color")
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	values := []string{reordered[0].Value, reordered[1].Value, reordered[2].Value}
	assert.Equal(t, []string{"Blue", "Black", "White"}, values)
}

func TestCategoryRepository_AllGroupsByDimension(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewCategoryRepository(db)
	ctx := context.Background()

	seedColors(t, repo, "Black")
	require.NoError(t, repo.Create(ctx, &models.Category{Type: "size", Value: "M", IsActive: true}))

	grouped, err := repo.All(ctx)
	require.NoError(t, err)

	assert.Len(t, grouped["color"], 1)
	assert.Len(t, grouped["size"], 1)
	assert.Empty(t, grouped["design"])
}
