package repository

import "gorm.io/gorm"

// applyPagination applies the limit/offset window for a one-based page.
// A non-positive pageSize disables paging so callers can fetch everything.
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
