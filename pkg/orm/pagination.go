// Package orm provides query helpers shared by the repository layer.
package orm

import (
	"time"

	"github.com/shashiranjanraj/tillpoint/pkg/cache"
	"gorm.io/gorm"
)

// Pagination carries the page metadata returned next to any paginated list.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// Paginate runs a count + offset/limit find on the prepared query and fills
// dest. Page numbers are 1-based; out-of-range inputs are clamped.
func Paginate(query *gorm.DB, dest interface{}, page, perPage int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * perPage
	if err := query.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// CachedFind is a read-through cache for list queries: on a miss it runs the
// query, fills dest, and stores the result under key for ttl.
func CachedFind(query *gorm.DB, key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := query.Find(dest).Error; err != nil {
		return err
	}

	return cache.Set(key, dest, ttl)
}
