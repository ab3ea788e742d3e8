// Package common defines sentinel errors and small helpers shared across
// BloodBuddy packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned by lookups that find no record.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("not logged in")
)
