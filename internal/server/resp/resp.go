// Package resp holds the response helpers shared by all handlers. Errors are
// flat {"error": "..."} objects; list endpoints share one pagination
// envelope.
package resp

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Error writes a flat error body. Callers pass the HTTP status explicitly;
// some flows return business errors with status 200 and extra fields, those
// build their bodies by hand.
func Error(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, gin.H{"error": msg})
}

// Page is the envelope every list endpoint returns.
type Page struct {
	Items      any `json:"items"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// NewPage builds the envelope. items must never be nil so the JSON stays an
// array.
func NewPage(items any, page, size, total int) Page {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page{
		Items:      items,
		PageNumber: page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
		Total:      total,
	}
}

// PageParams reads ?page and ?limit with defaults page=1, limit=10 and a cap
// of 100. Malformed or non-positive values fall back to the defaults.
func PageParams(c *gin.Context) (page, limit, offset int) {
	page = atoiDefault(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = atoiDefault(c.Query("limit"), DefaultPageSize)
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
