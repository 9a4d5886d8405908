package model

import "time"

// Favorite links a user to a saved listing.  The (UserID, PropertyID)
// pair is unique; favoriting the same listing twice is rejected by the
// database.
//
// Fields:
//  ID         – UUID primary key.
//  UserID     – owner of the favorite.
//  PropertyID – the saved listing.
//  CreatedAt  – when the favorite was added.
type Favorite struct {
	ID         string    `json:"id"`          // favorites.id
	UserID     uint64    `json:"user_id"`     // favorites.user_id
	PropertyID string    `json:"property_id"` // favorites.property_id
	CreatedAt  time.Time `json:"created_at"`  // favorites.created_at
}
