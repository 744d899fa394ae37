package types

import "time"

// User represents an account in the system.
// Accounts are append-only: created at signup, never updated or
// deleted by this subsystem.
type User struct {
	// ID is the unique identifier of the user, derived from the
	// creation time in Unix milliseconds.
	ID int64 `json:"id"`

	// Name is the user's display name. Optional at signup.
	Name string `json:"name"`

	// Email is the user's email address, stored trimmed and
	// lowercased. It is the uniqueness key for accounts.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"passwordHash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}
