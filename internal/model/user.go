package model

import "time"

// User represents a row in the `users` table. Accounts are created on
// registration and immutable afterwards; there are no update or delete
// endpoints for users. The password hash never leaves the repository
// layer, so no json tags are defined here and handlers build their own
// response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, normalized (trimmed, lowercased) email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
