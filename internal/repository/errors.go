// Package repository defines sentinel error values shared across the data
// access layer. Handlers match on these with errors.Is to pick response
// status codes without inspecting driver-specific errors themselves.
package repository

import "errors"

// ErrEmailExists is returned when a registration collides with an existing
// email, either via the pre-read or via the unique index on users.email.
// Handlers translate this into an HTTP 400 with an "already registered"
// message.
var ErrEmailExists = errors.New("email already exists")

// ErrMovieNotFound is returned when a movie does not exist OR exists but is
// owned by a different user. The two cases are deliberately conflated so
// that responses never leak whether another user's row exists. Handlers
// translate this into an HTTP 404.
var ErrMovieNotFound = errors.New("movie not found")
