// Package query translates validated list filters into deterministic GORM
// scopes and computes pagination metadata.
package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pressroom/internal/model"
)

const (
	// DefaultPage is used when the caller supplies no usable page value.
	DefaultPage = 1
	// DefaultLimit is used when the caller supplies no usable limit value.
	DefaultLimit = 10
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// ListFilters is the normalized filter set for article list queries.
// Zero values mean "not filtered".
type ListFilters struct {
	Page     int
	Limit    int
	Status   model.ArticleStatus
	AuthorID uint
	Search   string
}

// Normalize clamps page and limit into their allowed ranges.
func (f ListFilters) Normalize() ListFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Predicate returns a scope applying the equality and search filters. The
// search term matches title or content case-insensitively; the OR group is
// AND'ed with any equality filters.
func Predicate(f ListFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.AuthorID != 0 {
			db = db.Where("author_id = ?", f.AuthorID)
		}
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", pattern, pattern)
		}
		return db
	}
}

// Page returns a scope applying ordering and pagination. Ordering is always
// newest first; ties on created_at fall back to storage iteration order.
func Page(f ListFilters) func(*gorm.DB) *gorm.DB {
	f = f.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").
			Offset((f.Page - 1) * f.Limit).
			Limit(f.Limit)
	}
}

// Key returns a deterministic cache key for the filter set.
func (f ListFilters) Key(prefix string) string {
	f = f.Normalize()
	return fmt.Sprintf("%s:p%d:l%d:s%s:a%d:q%s", prefix, f.Page, f.Limit, f.Status, f.AuthorID, strings.ToLower(f.Search))
}

// PaginationInfo is derived metadata for a paginated response. It is always
// recomputed from a fresh count, never stored.
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginate computes pagination metadata for a page of size limit out of total
// matching rows.
func Paginate(page, limit int, total int64) PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
