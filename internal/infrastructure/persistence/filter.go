package persistence

import (
	"strings"

	"github.com/appleshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Columns that FindAll queries may order by. Anything else falls back to
// created_at to keep user input out of the ORDER BY clause.
var allowedOrderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"title":        true,
	"price":        true,
	"status":       true,
	"published_at": true,
	"username":     true,
	"start_date":   true,
}

// applyPagination applies pagination and ordering from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(orderBy + " " + orderDir)
}
