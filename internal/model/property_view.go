package model

import "time"

// PropertyView is an append-only record of one listing view.  UserID
// is nil for guest views.  Rows are only ever inserted and read, never
// updated; the "recently viewed" page orders them by ViewedAt
// descending.
type PropertyView struct {
	ID         uint64    `json:"id"`                // property_views.id
	PropertyID string    `json:"property_id"`       // property_views.property_id
	UserID     *uint64   `json:"user_id,omitempty"` // property_views.user_id (nullable)
	ViewedAt   time.Time `json:"viewed_at"`         // property_views.viewed_at
}
