package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// SavedSearchRepo manages the saved_searches table.
type SavedSearchRepo struct {
	db *sql.DB
}

func NewSavedSearchRepo(db *sql.DB) *SavedSearchRepo {
	return &SavedSearchRepo{db: db}
}

// Create stores a named filter configuration and returns its id.
// filters is kept as opaque JSON exactly as submitted.
func (r *SavedSearchRepo) Create(ctx context.Context, userID uint64, name, filters string, notify bool) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO saved_searches (id, user_id, name, filters, notify) VALUES (?,?,?,?,?)",
		id, userID, name, filters, notify)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns the user's saved searches newest first.
func (r *SavedSearchRepo) ListByUser(ctx context.Context, userID uint64) ([]model.SavedSearch, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, filters, notify, created_at FROM saved_searches WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SavedSearch{}
	for rows.Next() {
		var s model.SavedSearch
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Filters, &s.Notify, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a saved search owned by the user. It returns
// sql.ErrNoRows when no owned row matched.
func (r *SavedSearchRepo) Delete(ctx context.Context, userID uint64, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM saved_searches WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
