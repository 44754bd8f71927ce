// Package common defines sentinel errors and constants shared by the
// phishwatch client packages. Callers match errors with errors.Is.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Authorization errors. ErrUnauthorized means the backend rejected the
	// credential (HTTP 401); ErrForbidden means the caller is authenticated
	// but lacks the role or approval for the operation (HTTP 403).
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Credential errors raised while decoding a stored token.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Input errors: filter bounds, upload checks, malformed commands.
	ErrValidation = errors.New("validation error")

	// ErrNothingToExport is returned when an export is requested for an
	// empty record set. It is a warning, not a failure.
	ErrNothingToExport = errors.New("no logs to export")
)
