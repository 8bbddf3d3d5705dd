package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/services"
)

func TestGenerateName(t *testing.T) {
	tests := []struct {
		name  string
		attrs services.ItemAttributes
		want  string
	}{
		{
			name: "suppresses General and Plain",
			attrs: services.ItemAttributes{
				Type: "Shirt", Color: "Blue", Size: "M",
				GroupType: "General", Design: "Plain",
			},
			want: "Blue Shirt (M)",
		},
		{
			name: "suppresses Solid design",
			attrs: services.ItemAttributes{
				Type: "Shirt", Color: "Red", Size: "L", Design: "Solid",
			},
			want: "Red Shirt (L)",
		},
		{
			name: "keeps meaningful group and design",
			attrs: services.ItemAttributes{
				Type: "Shirt", Color: "Black", Size: "S",
				GroupType: "Seasonal", Design: "Striped",
			},
			want: "Seasonal Striped Black Shirt (S)",
		},
		{
			name: "styleGroup replaces type",
			attrs: services.ItemAttributes{
				Type: "Shirt", Color: "White", Size: "XL", StyleGroup: "Hoodie",
			},
			want: "White Hoodie (XL)",
		},
		{
			name:  "no size means no parens",
			attrs: services.ItemAttributes{Type: "Hat", Color: "Green"},
			want:  "Green Hat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.GenerateName(tt.attrs))
		})
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := services.GenerateSKU(services.ItemAttributes{
		Type: "Shirt", Color: "Blue", Size: "M",
	})
	assert.Regexp(t, regexp.MustCompile(`^SHI-BLU-MD-\d{3}$`), sku)
}

func TestGenerateSKU_SizeCodes(t *testing.T) {
	tests := map[string]string{
		"XS":  "XS",
		"S":   "SM",
		"M":   "MD",
		"L":   "LG",
		"XL":  "XL",
		"XXL": "2X",
	}
	for size, code := range tests {
		sku := services.GenerateSKU(services.ItemAttributes{
			Type: "Shirt", Color: "Blue", Size: size,
		})
		assert.Regexp(t, `^SHI-BLU-`+code+`-\d{3}$`, sku)
	}
}

func TestGenerateSKU_SkipsEmptySegments(t *testing.T) {
	sku := services.GenerateSKU(services.ItemAttributes{Type: "Hat"})
	assert.Regexp(t, regexp.MustCompile(`^HAT-\d{3}$`), sku)
}

func TestGenerateUniqueSKU_RetriesOnCollision(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	attrs := services.ItemAttributes{Type: "Shirt", Color: "Blue", Size: "M"}

	sku, err := services.GenerateUniqueSKU(ctx, db, attrs)
	require.NoError(t, err)
	assert.NotEmpty(t, sku)

	// Occupy the generated SKU, then generate again; the retry loop must land
	// on a different suffix (same prefix family).
	require.NoError(t, db.Create(&models.InventoryItem{
		SKU:   sku,
		Name:  "taken",
		Price: decimal.NewFromInt(1),
	}).Error)

	next, err := services.GenerateUniqueSKU(ctx, db, attrs)
	require.NoError(t, err)
	assert.NotEqual(t, sku, next)
}
