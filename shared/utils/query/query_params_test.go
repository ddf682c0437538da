package query

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type listRow struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Location  string
	CreatedAt time.Time
}

func newQueryDB(t *testing.T, rows ...listRow) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&listRow{}))

	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return db
}

func parseFrom(t *testing.T, rawQuery string) FilterParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)

	return ParseQueryParams(c)
}

func TestParseQueryParamsDefaults(t *testing.T) {
	params := parseFrom(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "created_at", params.Sort.Field)
	assert.Equal(t, "desc", params.Sort.Order)
	assert.Empty(t, params.Filters)
}

func TestParseQueryParamsClampsPagination(t *testing.T) {
	params := parseFrom(t, "page=0&limit=9999")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.Limit)
}

func TestParseQueryParamsFilters(t *testing.T) {
	params := parseFrom(t, "filters[status]=pending&filters[org_id]=abc&sort[field]=name&sort[order]=asc")

	assert.Equal(t, "pending", params.Filters["status"])
	assert.Equal(t, "abc", params.Filters["org_id"])
	assert.Equal(t, "name", params.Sort.Field)
	assert.Equal(t, "asc", params.Sort.Order)
}

func TestParseQueryParamsRejectsBadSortOrder(t *testing.T) {
	params := parseFrom(t, "sort[order]=DROP")
	assert.Equal(t, "desc", params.Sort.Order)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	db := newQueryDB(t,
		listRow{Name: "River Otter Pool", Location: "North wing"},
		listRow{Name: "Aviary", Location: "South wing"},
	)

	var matches []listRow
	require.NoError(t, ApplySearch(db.Model(&listRow{}), "OTTER", []string{"name", "location"}).
		Find(&matches).Error)
	require.Len(t, matches, 1)
	assert.Equal(t, "River Otter Pool", matches[0].Name)

	// The match spans every listed column
	require.NoError(t, ApplySearch(db.Model(&listRow{}), "wing", []string{"name", "location"}).
		Find(&matches).Error)
	assert.Len(t, matches, 2)
}

func TestApplyFiltersIgnoresUnknownFields(t *testing.T) {
	db := newQueryDB(t,
		listRow{Name: "A", Location: "north"},
		listRow{Name: "B", Location: "south"},
	)
	allowed := map[string]string{"location": "location"}

	var matches []listRow
	require.NoError(t, ApplyFilters(db.Model(&listRow{}),
		map[string]string{"location": "north", "name": "B"}, allowed).
		Find(&matches).Error)

	// Only the allowed filter applies; the name filter is dropped
	require.Len(t, matches, 1)
	assert.Equal(t, "A", matches[0].Name)
}

func TestApplySortFallsBackOnUnknownField(t *testing.T) {
	db := newQueryDB(t,
		listRow{Name: "B"},
		listRow{Name: "A"},
	)
	allowed := map[string]string{"name": "name"}

	var rows []listRow
	require.NoError(t, ApplySort(db.Model(&listRow{}),
		SortParams{Field: "name", Order: "asc"}, allowed).Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Name)

	// An unlisted sort field must not reach the SQL text
	require.NoError(t, ApplySort(db.Model(&listRow{}),
		SortParams{Field: "name; DROP TABLE list_rows", Order: "asc"}, allowed).
		Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestApplyPaginationWindow(t *testing.T) {
	db := newQueryDB(t,
		listRow{Name: "A"}, listRow{Name: "B"}, listRow{Name: "C"},
	)

	var rows []listRow
	require.NoError(t, ApplyPagination(db.Model(&listRow{}).Order("id"), 2, 2).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Name)
}

func TestBuildPaginationResponse(t *testing.T) {
	p := BuildPaginationResponse(2, 10, 35)

	assert.Equal(t, int64(4), p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := BuildPaginationResponse(4, 10, 35)
	assert.False(t, last.HasNext)
}
