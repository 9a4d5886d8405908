package repository

import (
	"context"
	"strings"

	"github.com/Max1335/property-insights-hub/internal/model"
	"github.com/Max1335/property-insights-hub/internal/search"
)

// listingConditions translates a filter configuration into a WHERE
// clause. Only active listings are ever eligible; each present filter
// narrows the set by conjunction. Price bounds are always applied and
// inclusive on both ends (PriceMax <= 0 means unbounded above).
func listingConditions(q search.ListingQuery) (string, []any) {
	where := []string{"status = ?", "price >= ?"}
	args := []any{model.StatusActive, q.PriceMin}

	if q.PriceMax > 0 {
		where = append(where, "price <= ?")
		args = append(args, q.PriceMax)
	}
	if q.City != "" {
		where = append(where, "city = ?")
		args = append(args, q.City)
	}
	if q.PropertyType != "" {
		where = append(where, "property_type = ?")
		args = append(args, q.PropertyType)
	}
	if q.Rooms > 0 {
		where = append(where, "rooms = ?")
		args = append(args, q.Rooms)
	}
	if q.Condition != "" {
		where = append(where, "`condition` = ?")
		args = append(args, q.Condition)
	}
	if q.MinYear > 0 {
		where = append(where, "building_year >= ?")
		args = append(args, q.MinYear)
	}
	if q.Text != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		needle := "%" + strings.ToLower(q.Text) + "%"
		args = append(args, needle, needle)
	}
	return strings.Join(where, " AND "), args
}

// listingOrder maps a sort key onto a deterministic total order. Ties
// break by created_at descending with the primary key as the final
// key, so re-running the same query against unchanged data returns the
// same sequence.
func listingOrder(sortBy string) string {
	switch sortBy {
	case search.SortPriceAsc:
		return "price ASC, created_at DESC, id ASC"
	case search.SortPriceDesc:
		return "price DESC, created_at DESC, id ASC"
	case search.SortAreaDesc:
		return "area DESC, created_at DESC, id ASC"
	default: // search.SortNewest
		return "created_at DESC, id ASC"
	}
}

// SearchListings runs one filter configuration against the properties
// table and returns the matching page plus the total match count. It
// implements search.Searcher; the search runner wraps failures and
// handles staleness.
func (r *PropertyRepo) SearchListings(ctx context.Context, q search.ListingQuery) ([]model.Property, int64, error) {
	cond, args := listingConditions(q)

	var total int64
	countSQL := "SELECT COUNT(*) FROM properties WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := "SELECT " + propertyColumns + " FROM properties WHERE " + cond +
		" ORDER BY " + listingOrder(q.SortBy) + " LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	out, err := r.queryProperties(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
