package model

import "time"

// Roles stored in the users.role column.  USER browses and favorites,
// REALTOR additionally submits and edits own listings, ADMIN moderates
// listings and manages users.
const (
	RoleUser    = "USER"
	RoleRealtor = "REALTOR"
	RoleAdmin   = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table.  FullName and Phone are profile fields shown on listing
// detail pages next to the seller's contacts.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – USER, REALTOR or ADMIN.
//  FullName     – display name (may be empty).
//  Phone        – contact phone (may be empty).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	FullName     string    // users.full_name
	Phone        string    // users.phone
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
