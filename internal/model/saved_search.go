package model

import "time"

// SavedSearch stores a named filter configuration so a user can re-run
// it later.  Filters holds the serialized search configuration as it
// was submitted; Notify marks searches the user wants alerts for (the
// alerting itself is out of scope, the flag is persisted as-is).
type SavedSearch struct {
	ID        string    `json:"id"`         // saved_searches.id
	UserID    uint64    `json:"user_id"`    // saved_searches.user_id
	Name      string    `json:"name"`       // saved_searches.name
	Filters   string    `json:"filters"`    // saved_searches.filters (JSON)
	Notify    bool      `json:"notify"`     // saved_searches.notify
	CreatedAt time.Time `json:"created_at"` // saved_searches.created_at
}
