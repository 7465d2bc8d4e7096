// Package service provides application-level services for managing the
// catalog, lessons and users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to
// HTTP status codes.
var (
	// ErrInvalidExportFormat indicates an export was requested in a format
	// the service does not produce. API layer should map this to HTTP 400.
	ErrInvalidExportFormat = errors.New("invalid export format")

	// ErrEmptyReorder indicates a reorder request carried no pairs.
	// API layer should map this to HTTP 400.
	ErrEmptyReorder = errors.New("reorder requires at least one lesson")
)
