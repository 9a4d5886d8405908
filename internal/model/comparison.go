package model

import "time"

// ComparisonSnapshot is a saved copy of a user's comparison set at a
// point in time.  The live set itself lives in Redis (see the compare
// package); snapshots are written only when the user explicitly saves
// a comparison and are read back as history.
type ComparisonSnapshot struct {
	ID          string    `json:"id"`           // property_comparisons.id
	UserID      uint64    `json:"user_id"`      // property_comparisons.user_id
	PropertyIDs []string  `json:"property_ids"` // property_comparisons.property_ids (JSON array)
	CreatedAt   time.Time `json:"created_at"`   // property_comparisons.created_at
}
