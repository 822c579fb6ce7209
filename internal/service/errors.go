package service

import (
	"errors"
	"fmt"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	// ErrClientNotInitialized means credentials could not be loaded at startup.
	ErrClientNotInitialized = errors.New("GA4 client not initialized")

	// ErrArchiveDisabled means no snapshot storage is configured.
	ErrArchiveDisabled = errors.New("snapshot archive disabled")
)

// UpstreamError wraps any failure of the GA4 runReport call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ga4 run report: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when an upstream response does not
// have the shape the report request asked for.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed GA4 response: " + e.Reason
}
