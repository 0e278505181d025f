package persistence

import (
	"strings"
	"time"

	"github.com/nexuscrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Scope helpers shared by every repository. FindAll composes the repository's
// match scope with pageScope; Count uses the match scope alone so totals
// ignore pagination.

// Columns sortable on every entity
var commonSortColumns = []string{"id", "created_at", "updated_at"}

// pageScope applies pagination and ordering, newest first by default. The
// requested order column is validated against the repository's sortable
// columns so user input never reaches the ORDER BY clause raw.
func pageScope(filter shared.Filter, sortable ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Page > 0 && filter.PageSize > 0 {
			q = q.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
		}
		return q.Order(orderClause(filter, sortable))
	}
}

// orderClause builds the ORDER BY expression from whitelisted parts only.
// An empty or unknown order_by falls back to created_at DESC.
func orderClause(filter shared.Filter, sortable []string) string {
	requested := strings.TrimSpace(filter.OrderBy)
	column := ""
	for _, col := range append(sortable, commonSortColumns...) {
		if requested == col {
			column = col
			break
		}
	}
	if column == "" {
		return "created_at DESC"
	}
	if strings.EqualFold(filter.OrderDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}

// searchScope matches the free-text term against the given columns. Both
// sides are lowered so matching is case-insensitive on postgres and sqlite
// alike.
func searchScope(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if term == "" {
			return q
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return q.Where(strings.Join(clauses, " OR "), args...)
	}
}

// equalityScope applies the whitelisted per-field filters as equality matches
func equalityScope(filters map[string]interface{}, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		for _, col := range columns {
			if v, ok := filters[col]; ok {
				q = q.Where(col+" = ?", v)
			}
		}
		return q
	}
}

// dateRangeScope applies the start_date and end_date filters to column
func dateRangeScope(filters map[string]interface{}, column string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if t, ok := filters["start_date"].(time.Time); ok {
			q = q.Where(column+" >= ?", t)
		}
		if t, ok := filters["end_date"].(time.Time); ok {
			q = q.Where(column+" <= ?", t)
		}
		return q
	}
}

// dateCapScope applies an upper bound filter, e.g. due_before on due_date
func dateCapScope(filters map[string]interface{}, key, column string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if t, ok := filters[key].(time.Time); ok {
			q = q.Where(column+" <= ?", t)
		}
		return q
	}
}
