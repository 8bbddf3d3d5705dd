package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"gorm.io/gorm"
)

// ItemAttributes is the category selection that drives name and SKU
// generation for a new item.
type ItemAttributes struct {
	Type       string
	Size       string
	Color      string
	Design     string
	GroupType  string
	StyleGroup string
}

// sizeCodes maps a size value to its two-letter SKU segment. Unknown sizes
// fall back to the first two letters, uppercased.
var sizeCodes = map[string]string{
	"XS": "XS", "S": "SM", "M": "MD", "L": "LG", "XL": "XL",
	"XXL": "2X", "XXXL": "3X", "One Size": "OS",
}

// GenerateName builds the display name from the category selection.
//
// Segments appear in fixed order: groupType, design, color, styleGroup (or
// type when no styleGroup is set), then the size in parentheses. The filler
// values "General", "Plain", and "Solid" are suppressed so common items get
// short natural names, e.g. {Shirt, Blue, M, General, Plain} reads
// "Blue Shirt (M)".
func GenerateName(a ItemAttributes) string {
	var parts []string

	if a.GroupType != "" && !strings.EqualFold(a.GroupType, "General") {
		parts = append(parts, a.GroupType)
	}
	if a.Design != "" && !strings.EqualFold(a.Design, "Plain") && !strings.EqualFold(a.Design, "Solid") {
		parts = append(parts, a.Design)
	}
	if a.Color != "" {
		parts = append(parts, a.Color)
	}
	if a.StyleGroup != "" {
		parts = append(parts, a.StyleGroup)
	} else if a.Type != "" {
		parts = append(parts, a.Type)
	}

	name := strings.Join(parts, " ")
	if a.Size != "" {
		name = strings.TrimSpace(name + " (" + a.Size + ")")
	}
	return name
}

// GenerateSKU builds a candidate SKU of the form TYP-COL-SZ-NNN: three-letter
// uppercase prefixes of type and color, a two-letter size code, and a random
// three-digit suffix. The suffix alone does not guarantee uniqueness; use
// GenerateUniqueSKU when persisting.
func GenerateSKU(a ItemAttributes) string {
	segments := []string{
		letterPrefix(a.Type, 3),
		letterPrefix(a.Color, 3),
		sizeCode(a.Size),
		fmt.Sprintf("%03d", randomSuffix()),
	}

	var kept []string
	for _, s := range segments {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "-")
}

// GenerateUniqueSKU generates a SKU and verifies it against the items table,
// retrying with a fresh random suffix on collision. After five misses it
// returns ErrSKUGeneration rather than looping forever.
func GenerateUniqueSKU(ctx context.Context, db *gorm.DB, a ItemAttributes) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		sku := GenerateSKU(a)

		var count int64
		err := db.WithContext(ctx).
			Model(&models.InventoryItem{}).
			Where("sku = ?", sku).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("skugen: uniqueness check: %w", err)
		}
		if count == 0 {
			return sku, nil
		}
	}
	return "", ErrSKUGeneration
}

func letterPrefix(value string, n int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)

	if len(cleaned) > n {
		cleaned = cleaned[:n]
	}
	return strings.ToUpper(cleaned)
}

func sizeCode(size string) string {
	if size == "" {
		return ""
	}
	if code, ok := sizeCodes[strings.ToUpper(size)]; ok {
		return code
	}
	if code, ok := sizeCodes[size]; ok {
		return code
	}
	return letterPrefix(size, 2)
}

func randomSuffix() int {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
