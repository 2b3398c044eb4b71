// Package upstream holds the error classification shared by the geocoding
// and routing clients: both talk to the same API family and map transport
// failures and HTTP statuses to planning error kinds identically.
package upstream

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
)

// TransportError maps a failed round trip to a typed planning error,
// distinguishing timeouts from other connection failures where the transport
// exposes that distinction. Neither is retried at this layer.
func TransportError(api string, err error) *planning.Error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return planning.NewError(planning.KindTimeout, "%s request timed out: %v", api, err)
	}
	return planning.NewError(planning.KindConnectionError, "%s network error: %v", api, err)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// StatusError maps a non-200 HTTP status to a typed planning error. message
// is the upstream's own error message when the body carried one, otherwise
// empty.
func StatusError(api string, status int, message string) *planning.Error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return planning.NewError(planning.KindAuthError, "%s rejected the API key (%d): %s", api, status, message)
	case status == http.StatusTooManyRequests:
		return planning.NewError(planning.KindRateLimited, "%s rate limit exceeded (%d): %s", api, status, message)
	case status >= 500:
		return planning.NewError(planning.KindUpstreamUnavailable, "%s unavailable (%d): %s", api, status, message)
	default:
		return planning.NewError(planning.KindUpstreamError, "%s returned status %d: %s", api, status, message)
	}
}
