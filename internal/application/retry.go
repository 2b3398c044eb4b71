package application

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/fantastic-tour/service-routing/internal/metrics"
	"go.uber.org/zap"
)

const (
	// RetryAttempts is the total number of tries per upstream call,
	// including the first.
	RetryAttempts = 3
	// RetryDelay is the fixed pause between tries.
	RetryDelay = time.Second
)

// RetryingGeocoder wraps a Geocoder with a fixed-delay retry policy. Only
// transient failures (timeouts, connection errors, rate limiting, upstream
// unavailability) are retried; everything else fails immediately, since
// retrying a not-found or an invalid key can never succeed.
type RetryingGeocoder struct {
	inner  planning.Geocoder
	logger *zap.Logger
}

// NewRetryingGeocoder wraps inner with the retry policy.
func NewRetryingGeocoder(inner planning.Geocoder, logger *zap.Logger) *RetryingGeocoder {
	return &RetryingGeocoder{inner: inner, logger: logger}
}

// Geocode delegates to the wrapped geocoder, retrying transient failures.
func (g *RetryingGeocoder) Geocode(ctx context.Context, locationText string) (*planning.Place, error) {
	var place *planning.Place
	op := func() error {
		p, err := g.inner.Geocode(ctx, locationText)
		if err != nil {
			return markPermanent(err)
		}
		place = p
		return nil
	}
	if err := backoff.RetryNotify(op, newRetryPolicy(ctx), retryNotify("geocoding", g.logger)); err != nil {
		return nil, err
	}
	return place, nil
}

// RetryingRouter wraps a Router with the same fixed-delay retry policy as
// RetryingGeocoder.
type RetryingRouter struct {
	inner  planning.Router
	logger *zap.Logger
}

// NewRetryingRouter wraps inner with the retry policy.
func NewRetryingRouter(inner planning.Router, logger *zap.Logger) *RetryingRouter {
	return &RetryingRouter{inner: inner, logger: logger}
}

// Route delegates to the wrapped router, retrying transient failures.
func (r *RetryingRouter) Route(ctx context.Context, req planning.RouteRequest) (*planning.Route, error) {
	var route *planning.Route
	op := func() error {
		rt, err := r.inner.Route(ctx, req)
		if err != nil {
			return markPermanent(err)
		}
		route = rt
		return nil
	}
	if err := backoff.RetryNotify(op, newRetryPolicy(ctx), retryNotify("routing", r.logger)); err != nil {
		return nil, err
	}
	return route, nil
}

func newRetryPolicy(ctx context.Context) backoff.BackOffContext {
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(RetryDelay), RetryAttempts-1),
		ctx,
	)
}

// markPermanent stops backoff immediately for non-transient failures.
func markPermanent(err error) error {
	var pe *planning.Error
	if errors.As(err, &pe) && !pe.Retryable() {
		return backoff.Permanent(err)
	}
	return err
}

// retryNotify counts and logs retries. backoff invokes the notify callback
// only when another attempt will actually follow, so an exhausted sequence
// records RetryAttempts-1 retries, not RetryAttempts.
func retryNotify(api string, logger *zap.Logger) backoff.Notify {
	return func(err error, wait time.Duration) {
		metrics.RetryAttemptsTotal.WithLabelValues(api).Inc()
		logger.Warn("transient upstream failure, retrying",
			zap.String("api", api),
			zap.String("kind", string(planning.KindOf(err))),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
}
