package planning

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a planning failure. Kinds are stable identifiers
// consumed by presentation layers to pick a status code and a message.
type ErrorKind string

const (
	// Validation kinds (produced before any network I/O).
	KindEmpty            ErrorKind = "empty"
	KindTooShort         ErrorKind = "too_short"
	KindTooLong          ErrorKind = "too_long"
	KindIllegalCharacter ErrorKind = "illegal_character"
	KindUnsupportedMode  ErrorKind = "unsupported_mode"
	KindOutOfRange       ErrorKind = "out_of_range"

	// KindInvalidInput is returned by clients whose defensive re-validation
	// failed, meaning the caller skipped the validators.
	KindInvalidInput ErrorKind = "invalid_input"

	// Transport kinds.
	KindTimeout         ErrorKind = "timeout"
	KindConnectionError ErrorKind = "connection_error"

	// Upstream kinds.
	KindAuthError           ErrorKind = "auth_error"
	KindRateLimited         ErrorKind = "rate_limited"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindUpstreamError       ErrorKind = "upstream_error"
	KindNotFound            ErrorKind = "not_found"
	KindNoRouteFound        ErrorKind = "no_route_found"
	KindMalformedResponse   ErrorKind = "malformed_response"

	// KindSameLocation marks the "nothing to route" outcome: origin and
	// destination geocoded to the same point. Informational, not an error.
	KindSameLocation ErrorKind = "same_location"
)

// Error is the typed failure value used throughout the planning core.
// Every failure path returns one of these; nothing panics or exits.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a typed planning error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Retryable reports whether the failure is transient and worth retrying.
// Validation failures, auth failures and malformed payloads never are.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnectionError, KindRateLimited, KindUpstreamUnavailable:
		return true
	default:
		return false
	}
}

// KindOf extracts the ErrorKind from err, or KindUpstreamError when err is
// not a planning error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUpstreamError
}
