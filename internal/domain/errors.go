// Package domain holds the shared error vocabulary of the service.
package domain

import "errors"

var (
	// ErrNotConfigured signals that a backend has no base URL set.
	// The feature is considered disabled, not broken.
	ErrNotConfigured = errors.New("backend not configured")
	// ErrNoCredentials signals that a backend URL is set but neither a
	// token nor a username was provided.
	ErrNoCredentials = errors.New("backend credentials not configured")
	// ErrBackendUnavailable signals a transport-level failure
	// (network error, timeout, non-2xx response).
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrUnknownRecordKind signals an unsupported record kind in a request.
	ErrUnknownRecordKind = errors.New("unknown record kind")
)
