// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used on the default exchange. Routing keys equal queue names.
const (
	ListingViewedQueue = "listing.viewed"
	PriceChangedQueue  = "listing.price_changed"
)

// ListingViewedEvent is published when someone opens a listing detail
// page. The consumer appends a property_views row and bumps the
// denormalized views counter; the request path never waits for that.
type ListingViewedEvent struct {
	PropertyID string  `json:"property_id"`
	UserID     *uint64 `json:"user_id,omitempty"` // nil for guest views
	ViewedAt   string  `json:"viewed_at"`
}

// PriceChangedEvent is published when an owner edit moves a listing's
// price. The consumer appends a property_changes row so the price
// history panel can show the movement.
type PriceChangedEvent struct {
	PropertyID string  `json:"property_id"`
	OldPrice   float64 `json:"old_price"`
	NewPrice   float64 `json:"new_price"`
	ChangedAt  string  `json:"changed_at"`
}
