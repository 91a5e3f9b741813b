package response

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"vidtube/internal/models"
)

// ===============================
// PAGINATION CONFIGURATION
// ===============================

// PaginationConfig holds the listing parameter names and bounds.
type PaginationConfig struct {
	DefaultLimit  int    `json:"default_limit"`
	MaxLimit      int    `json:"max_limit"`
	PageParam     string `json:"page_param"`
	LimitParam    string `json:"limit_param"`
	SortByParam   string `json:"sort_by_param"`
	SortTypeParam string `json:"sort_type_param"`
}

// DefaultPaginationConfig returns the standard listing contract:
// page=1, limit=10, limit clamped into [1,100].
func DefaultPaginationConfig() *PaginationConfig {
	return &PaginationConfig{
		DefaultLimit:  10,
		MaxLimit:      100,
		PageParam:     "page",
		LimitParam:    "limit",
		SortByParam:   "sortBy",
		SortTypeParam: "sortType",
	}
}

// ===============================
// PAGINATION PARSER
// ===============================

// PaginationParser extracts listing parameters from request queries.
// Malformed values fall back to defaults rather than erroring; limit is
// clamped into [1, MaxLimit].
type PaginationParser struct {
	config *PaginationConfig
}

// NewPaginationParser creates a pagination parser.
func NewPaginationParser(config *PaginationConfig) *PaginationParser {
	if config == nil {
		config = DefaultPaginationConfig()
	}
	return &PaginationParser{config: config}
}

// ParseFromQuery parses page/limit/sortBy/sortType from a query string.
func (p *PaginationParser) ParseFromQuery(query url.Values) models.PaginationParams {
	params := models.PaginationParams{
		Page:     1,
		Limit:    p.config.DefaultLimit,
		SortType: "desc",
	}

	if pageStr := query.Get(p.config.PageParam); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			params.Page = page
		}
	}

	if limitStr := query.Get(p.config.LimitParam); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			if limit < 1 {
				limit = 1
			}
			if limit > p.config.MaxLimit {
				limit = p.config.MaxLimit
			}
			params.Limit = limit
		}
	}

	if sortBy := query.Get(p.config.SortByParam); sortBy != "" {
		params.SortBy = sortBy
	}

	if sortType := strings.ToLower(query.Get(p.config.SortTypeParam)); sortType == "asc" || sortType == "desc" {
		params.SortType = sortType
	}

	return params
}

// ParseFromRequest parses listing parameters from an HTTP request.
func (p *PaginationParser) ParseFromRequest(r *http.Request) models.PaginationParams {
	return p.ParseFromQuery(r.URL.Query())
}

// ===============================
// PAGINATED WRITES
// ===============================

// WritePaginated writes a page envelope produced by the service layer.
func (b *Builder) WritePaginated(w http.ResponseWriter, r *http.Request, page interface{}, message string) {
	b.WriteSuccess(w, r, page, message)
}
