package repository

import (
	"context"
	"database/sql"
)

// StatsRepo computes live counts for the admin panel and the per-city
// aggregates shown on the analytics page.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// AdminStats are the live counters on the admin dashboard.
type AdminStats struct {
	TotalProperties int64 `json:"total_properties"`
	ActiveListings  int64 `json:"active_listings"`
	PendingListings int64 `json:"pending_listings"`
	TotalUsers      int64 `json:"total_users"`
}

// Admin returns the live counters in one round trip per counter.
func (r *StatsRepo) Admin(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&s.TotalProperties); err != nil {
		return s, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE status='active'").Scan(&s.ActiveListings); err != nil {
		return s, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE status='pending'").Scan(&s.PendingListings); err != nil {
		return s, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_active=1").Scan(&s.TotalUsers); err != nil {
		return s, err
	}
	return s, nil
}

// CityStat aggregates active listings for one city.
type CityStat struct {
	City           string  `json:"city"`
	ActiveListings int64   `json:"active_listings"`
	AvgPricePerSqm float64 `json:"avg_price_per_sqm"`
}

// ByCity returns per-city aggregates over active listings, largest
// market first.
func (r *StatsRepo) ByCity(ctx context.Context) ([]CityStat, error) {
	const q = `SELECT city, COUNT(*), COALESCE(AVG(price_per_sqm), 0)
		FROM properties WHERE status='active'
		GROUP BY city ORDER BY COUNT(*) DESC, city ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CityStat{}
	for rows.Next() {
		var s CityStat
		if err := rows.Scan(&s.City, &s.ActiveListings, &s.AvgPricePerSqm); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
