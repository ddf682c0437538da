// Package query holds the list-endpoint plumbing the services share:
// query-string parsing and the gorm helpers that turn the parsed values
// into WHERE, ORDER BY and LIMIT clauses.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	defaultSort  = "created_at DESC"
)

// FilterParams carries everything a list endpoint reads from the query
// string: `?page=2&limit=20&search=otter&filters[location]=north&`
// `sort[field]=name&sort[order]=asc`.
type FilterParams struct {
	Filters map[string]string `json:"filters"`
	Sort    SortParams        `json:"sort"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search"`
}

// SortParams is the requested ordering; Order is always "asc" or "desc".
type SortParams struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PaginationResponse is the page metadata attached to list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ParseQueryParams reads the list parameters from the request, clamping
// the page to 1 and the limit to [1, 100].
func ParseQueryParams(c *gin.Context) FilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		name, ok := filterKey(key)
		if ok && len(values) > 0 && values[0] != "" {
			filters[name] = values[0]
		}
	}

	sort := SortParams{
		Field: c.DefaultQuery("sort[field]", "created_at"),
		Order: c.Query("sort[order]"),
	}
	if sort.Order != "asc" && sort.Order != "desc" {
		sort.Order = "desc"
	}

	return FilterParams{
		Filters: filters,
		Sort:    sort,
		Page:    page,
		Limit:   limit,
		Search:  c.Query("search"),
	}
}

// filterKey extracts the field name from a filters[name] query key.
func filterKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "filters[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(key, "filters["), "]")
	return name, name != ""
}

// ApplyFilters adds an equality clause per requested filter. Only fields
// named in allowedFields are honored; the map value is the column name,
// so query-facing names never reach the SQL text unchecked.
func ApplyFilters(db *gorm.DB, filters map[string]string, allowedFields map[string]string) *gorm.DB {
	for name, value := range filters {
		column, ok := allowedFields[name]
		if !ok || value == "" {
			continue
		}
		db = db.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return db
}

// ApplySearch adds a case-insensitive substring match over the given
// columns. The clause is LOWER(col) LIKE rather than ILIKE so it runs
// on any dialect gorm talks to, sqlite included.
func ApplySearch(db *gorm.DB, search string, columns []string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
		args = append(args, pattern)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// ApplySort orders by the requested field when it appears in
// allowedSortFields, falling back to newest-first otherwise.
func ApplySort(db *gorm.DB, sort SortParams, allowedSortFields map[string]string) *gorm.DB {
	column, ok := allowedSortFields[sort.Field]
	if !ok {
		return db.Order(defaultSort)
	}
	return db.Order(column + " " + strings.ToUpper(sort.Order))
}

// ApplyPagination applies the LIMIT/OFFSET window for the given page.
func ApplyPagination(db *gorm.DB, page, limit int) *gorm.DB {
	return db.Offset((page - 1) * limit).Limit(limit)
}

// BuildPaginationResponse derives the page metadata from a total count.
func BuildPaginationResponse(page, limit int, total int64) PaginationResponse {
	totalPages := (total + int64(limit) - 1) / int64(limit)

	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < int(totalPages),
		HasPrev:    page > 1,
	}
}
