package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ErrFavoriteExists is returned when a user favorites the same listing
// twice; the (user_id, property_id) pair is unique in the table.
var ErrFavoriteExists = errors.New("already in favorites")

// FavoriteRepo manages the favorites table.
type FavoriteRepo struct {
	db *sql.DB
}

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add saves a listing to the user's favorites and returns the new row id.
func (r *FavoriteRepo) Add(ctx context.Context, userID uint64, propertyID string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, property_id) VALUES (?,?,?)",
		id, userID, propertyID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrFavoriteExists
		}
		return "", err
	}
	return id, nil
}

// Remove deletes a favorite by (user, listing). Removing an absent
// favorite is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID uint64, propertyID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND property_id = ?",
		userID, propertyID)
	return err
}

// IsFavorite reports whether the user saved the listing.
func (r *FavoriteRepo) IsFavorite(ctx context.Context, userID uint64, propertyID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM favorites WHERE user_id = ? AND property_id = ? LIMIT 1",
		userID, propertyID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's favorites newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, property_id, created_at FROM favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Favorite{}
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListProperties returns the favorited listings themselves, newest
// favorite first, for the favorites page.
func (r *FavoriteRepo) ListProperties(ctx context.Context, userID uint64) ([]model.Property, error) {
	q := `SELECT ` + prefixedPropertyColumns("p") + `
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
