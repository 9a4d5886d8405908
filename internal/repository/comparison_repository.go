package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ComparisonRepo persists saved comparison snapshots. The live
// comparison set lives in Redis (compare package); a snapshot is
// written only when the user explicitly saves one.
type ComparisonRepo struct {
	db *sql.DB
}

func NewComparisonRepo(db *sql.DB) *ComparisonRepo {
	return &ComparisonRepo{db: db}
}

// SaveSnapshot stores the given ordered ids for the user and returns
// the snapshot id.
func (r *ComparisonRepo) SaveSnapshot(ctx context.Context, userID uint64, propertyIDs []string) (string, error) {
	id := uuid.NewString()
	raw, err := json.Marshal(propertyIDs)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO property_comparisons (id, user_id, property_ids) VALUES (?,?,?)",
		id, userID, raw)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByUser returns the user's saved comparisons newest first.
func (r *ComparisonRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ComparisonSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, property_ids, created_at FROM property_comparisons WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ComparisonSnapshot{}
	for rows.Next() {
		var (
			s   model.ComparisonSnapshot
			raw []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &raw, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.PropertyIDs = []string{}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &s.PropertyIDs)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
