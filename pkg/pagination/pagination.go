package pagination

import (
	"math"
	"strconv"
)

// PageSize is the fixed number of items per feed page
const PageSize = 10

// ParsePage interprets a raw page query parameter. Non-numeric values
// and anything below 1 fall back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset returns the item offset for a 1-based page number
func Offset(page int) int {
	return (page - 1) * PageSize
}

// Meta describes a page's position within the whole result set
type Meta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewMeta builds pagination metadata for a page over totalItems items.
// Pages past the end simply report no next page; they are not an error.
func NewMeta(page int, totalItems int64) Meta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(PageSize)))
	return Meta{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    PageSize,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
