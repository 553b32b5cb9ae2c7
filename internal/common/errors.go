// Package common defines shared constants and sentinel errors used across
// the server and station layers. Callers should match these with errors.Is.
package common

import "errors"

var (
	// repository-level errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// service-level errors
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// session-token errors
	ErrInvalidToken = errors.New("invalid token")

	// station-side network errors
	ErrServerUnreachable = errors.New("server unreachable")
	ErrNotConnected      = errors.New("not connected to server")
)
