package response

import (
	"net/url"
	"testing"

	"vidtube/internal/models"

	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, raw string) models.PaginationParams {
	t.Helper()
	values, err := url.ParseQuery(raw)
	assert.NoError(t, err)
	return NewPaginationParser(nil).ParseFromQuery(values)
}

func TestParseDefaults(t *testing.T) {
	params := parseQuery(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "desc", params.SortType)
}

func TestParseMalformedValuesFallBack(t *testing.T) {
	params := parseQuery(t, "page=abc&limit=xyz")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)

	params = parseQuery(t, "page=-3&limit=0")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 1, params.Limit)
}

func TestParseLimitClamped(t *testing.T) {
	params := parseQuery(t, "limit=500")
	assert.Equal(t, 100, params.Limit)
}

func TestParseSortType(t *testing.T) {
	assert.Equal(t, "asc", parseQuery(t, "sortType=ASC").SortType)
	assert.Equal(t, "desc", parseQuery(t, "sortType=sideways").SortType)
}

func TestPaginatedResponseMetadata(t *testing.T) {
	params := models.PaginationParams{Page: 2, Limit: 10}

	// 15 matching rows, page 2 holds the trailing 5.
	items := make([]int, 5)
	page := models.NewPaginatedResponse(items, params, 15)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}

func TestPaginatedResponsePastTheEnd(t *testing.T) {
	params := models.PaginationParams{Page: 9, Limit: 10}
	page := models.NewPaginatedResponse[int](nil, params, 15)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPrevPage)
}

func TestPaginatedResponseFirstPage(t *testing.T) {
	params := models.PaginationParams{Page: 1, Limit: 10}
	page := models.NewPaginatedResponse(make([]int, 10), params, 31)

	assert.Equal(t, 4, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPrevPage)
}
