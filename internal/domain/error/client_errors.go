// Package error defines domain-specific errors for the agency operations backend.
package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client is not found in the system.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientNameRequired is returned when a client is created without a name.
	ErrClientNameRequired = errors.New("client name is required")

	// ErrClientNoContactEmail is returned when an invitation is requested
	// for a client without a contact email address.
	ErrClientNoContactEmail = errors.New("client has no contact email")
)

// ClientErrorCode defines error codes for client errors.
// Format: CLI-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	ErrCodeClientNotFound       ClientErrorCode = "CLI-010001"
	ErrCodeClientNameRequired   ClientErrorCode = "CLI-010002"
	ErrCodeClientNoContactEmail ClientErrorCode = "CLI-010003"
)
