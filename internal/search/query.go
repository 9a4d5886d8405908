// Package search defines the listing search configuration and the
// runner that executes it against the repository with a bounded
// timeout and a last-configuration-wins guard.
package search

import "strings"

// Sort keys accepted by the listings search.  Every ordering is made
// total by breaking ties on created_at descending, so re-running the
// same query against unchanged data returns the same sequence.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortAreaDesc  = "area_desc"
)

// ListingQuery carries one filter configuration.  Zero-valued optional
// fields mean "no constraint on this dimension".  Price bounds are
// always applied inclusively; PriceMax <= 0 means unbounded above.
type ListingQuery struct {
	City         string  // exact city match
	PropertyType string  // exact type match
	PriceMin     float64 // inclusive lower price bound
	PriceMax     float64 // inclusive upper price bound, <= 0 for +inf
	Rooms        int     // exact room count, 0 for any
	Condition    string  // exact condition match
	MinYear      int     // building_year >= MinYear, 0 for any
	Text         string  // free-text match over title/description
	SortBy       string  // one of the Sort* keys, defaults to SortNewest
	Page         int
	PageSize     int
}

// Normalize clamps pagination, trims string filters and falls back to
// the default sort for unknown keys.  Handlers call this once before
// handing the query to the runner.
func (q *ListingQuery) Normalize() {
	q.City = strings.TrimSpace(q.City)
	q.PropertyType = strings.TrimSpace(q.PropertyType)
	q.Condition = strings.TrimSpace(q.Condition)
	q.Text = strings.TrimSpace(q.Text)
	if q.PriceMin < 0 {
		q.PriceMin = 0
	}
	switch q.SortBy {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortAreaDesc:
	default:
		q.SortBy = SortNewest
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
}
