package repository

import (
	"context"
	"database/sql"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ViewRepo manages the append-only property_views table. Rows are
// written by the background view consumer and read back to build the
// "recently viewed" ordering; nothing ever updates or deletes them.
type ViewRepo struct {
	db *sql.DB
}

func NewViewRepo(db *sql.DB) *ViewRepo {
	return &ViewRepo{db: db}
}

// Record appends one view. userID is nil for guest views.
func (r *ViewRepo) Record(ctx context.Context, propertyID string, userID *uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO property_views (property_id, user_id) VALUES (?,?)",
		propertyID, userID)
	return err
}

// RecentByUser returns the user's view history newest first, capped at
// limit rows. A listing viewed several times appears once, at the
// position of its most recent view.
func (r *ViewRepo) RecentByUser(ctx context.Context, userID uint64, limit int) ([]model.PropertyView, error) {
	if limit < 1 {
		limit = 20
	}
	const q = `SELECT MAX(id), property_id, MAX(viewed_at) AS last_viewed
		FROM property_views
		WHERE user_id = ?
		GROUP BY property_id
		ORDER BY last_viewed DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PropertyView{}
	for rows.Next() {
		v := model.PropertyView{UserID: &userID}
		if err := rows.Scan(&v.ID, &v.PropertyID, &v.ViewedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
