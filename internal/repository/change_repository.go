package repository

import (
	"context"
	"database/sql"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ChangeRepo manages the append-only property_changes table. Price
// changes are appended by the background consumer when an owner edit
// moves the price; the listing page reads them back for the price
// history panel.
type ChangeRepo struct {
	db *sql.DB
}

func NewChangeRepo(db *sql.DB) *ChangeRepo {
	return &ChangeRepo{db: db}
}

// AppendPriceChange records one price movement.
func (r *ChangeRepo) AppendPriceChange(ctx context.Context, propertyID string, oldPrice, newPrice float64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO property_changes (property_id, change_type, old_price, new_price) VALUES (?,?,?,?)",
		propertyID, model.ChangeTypePrice, oldPrice, newPrice)
	return err
}

// PriceHistory returns the newest price changes for a listing, capped
// at limit rows.
func (r *ChangeRepo) PriceHistory(ctx context.Context, propertyID string, limit int) ([]model.PropertyChange, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, property_id, change_type, old_price, new_price, changed_at
		 FROM property_changes
		 WHERE property_id = ? AND change_type = ?
		 ORDER BY changed_at DESC, id DESC LIMIT ?`,
		propertyID, model.ChangeTypePrice, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PropertyChange{}
	for rows.Next() {
		var ch model.PropertyChange
		if err := rows.Scan(&ch.ID, &ch.PropertyID, &ch.ChangeType, &ch.OldPrice, &ch.NewPrice, &ch.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}
