package model

import "time"

// Change types recorded in the property_changes table.  Only price
// changes are currently produced; the column exists so other edit
// kinds can be tracked later without a migration.
const (
	ChangeTypePrice = "price"
)

// PropertyChange is an append-only historical fact about a listing
// edit.  For price changes OldPrice and NewPrice carry the before and
// after values; consumers read these records only for display (price
// history on the listing page).
type PropertyChange struct {
	ID         uint64    `json:"id"`          // property_changes.id
	PropertyID string    `json:"property_id"` // property_changes.property_id
	ChangeType string    `json:"change_type"` // property_changes.change_type
	OldPrice   float64   `json:"old_price"`   // property_changes.old_price
	NewPrice   float64   `json:"new_price"`   // property_changes.new_price
	ChangedAt  time.Time `json:"changed_at"`  // property_changes.changed_at
}
