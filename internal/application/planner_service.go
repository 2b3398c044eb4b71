package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/fantastic-tour/service-routing/internal/metrics"
	"go.uber.org/zap"
)

// Stage identifies the step of the planning workflow a failure belongs to,
// so presentation layers can render a precise message ("Origin location not
// found" rather than a generic failure).
type Stage string

const (
	StageInput              Stage = "input"
	StageOriginGeocode      Stage = "origin_geocode"
	StageDestinationGeocode Stage = "destination_geocode"
	StageSameLocation       Stage = "same_location"
	StageRouting            Stage = "routing"
)

// PlanError is the typed failure returned by PlanRoute: the stage that
// aborted the plan, the underlying error kind, and a human-readable message.
type PlanError struct {
	Stage   Stage
	Kind    planning.ErrorKind
	Message string
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Stage, e.Kind, e.Message)
}

// Informational reports whether the failure is the same-location outcome,
// which presentation layers render as a notice rather than an error banner.
func (e *PlanError) Informational() bool {
	return e.Kind == planning.KindSameLocation
}

// newPlanError attaches a stage to an underlying planning error.
func newPlanError(stage Stage, err error) *PlanError {
	var pe *planning.Error
	if errors.As(err, &pe) {
		return &PlanError{Stage: stage, Kind: pe.Kind, Message: pe.Message}
	}
	return &PlanError{Stage: stage, Kind: planning.KindUpstreamError, Message: err.Error()}
}

// RoutePlan is the successful outcome of one planning call: both resolved
// display names plus the full route payload. Request-scoped; nothing is
// cached across calls.
type RoutePlan struct {
	OriginName      string                 `json:"origin_name"`
	DestinationName string                 `json:"destination_name"`
	Origin          planning.Coordinate    `json:"origin"`
	Destination     planning.Coordinate    `json:"destination"`
	Vehicle         planning.Vehicle       `json:"vehicle"`
	DistanceMeters  float64                `json:"distance_meters"`
	DurationMillis  float64                `json:"duration_millis"`
	Instructions    []planning.Instruction `json:"instructions"`
	Points          []planning.PathPoint   `json:"points,omitempty"`
}

// PlannerService orchestrates the route-planning workflow:
// validate -> geocode origin -> geocode destination -> reject identical
// points -> fetch route. It owns no retry policy; wrap the geocoder/router
// with the retry decorators to opt in.
type PlannerService struct {
	geocoder planning.Geocoder
	router   planning.Router
	vehicles planning.VehicleSet
	logger   *zap.Logger
}

// NewPlannerService creates a PlannerService with the given ports and
// vehicle allow-list.
func NewPlannerService(
	geocoder planning.Geocoder,
	router planning.Router,
	vehicles planning.VehicleSet,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		geocoder: geocoder,
		router:   router,
		vehicles: vehicles,
		logger:   logger,
	}
}

// Vehicles returns the configured travel-mode allow-list.
func (s *PlannerService) Vehicles() planning.VehicleSet {
	return s.vehicles
}

// PlanRoute runs the full workflow for one user request. The two geocode
// calls are deliberately sequential even though they are independent: the
// first failure short-circuits, so the user is told exactly which location
// failed. On failure the returned error is always a *PlanError.
func (s *PlannerService) PlanRoute(ctx context.Context, originText, destinationText, vehicleToken string) (*RoutePlan, error) {
	// Stage 1-2: validation, before any network I/O.
	if err := planning.ValidateLocationText(originText); err != nil {
		return nil, s.fail(StageInput, planning.NewError(planning.KindOf(err), "origin: %v", err))
	}
	if err := planning.ValidateLocationText(destinationText); err != nil {
		return nil, s.fail(StageInput, planning.NewError(planning.KindOf(err), "destination: %v", err))
	}
	if err := planning.ValidateVehicle(vehicleToken, s.vehicles); err != nil {
		return nil, s.fail(StageInput, err)
	}
	vehicle := planning.NormalizeVehicle(vehicleToken)

	// Stage 3: geocode origin.
	s.logger.Debug("geocoding origin", zap.String("origin", originText))
	origin, err := s.geocoder.Geocode(ctx, originText)
	if err != nil {
		return nil, s.fail(StageOriginGeocode, err)
	}

	// Stage 4: geocode destination.
	s.logger.Debug("geocoding destination",
		zap.String("origin_name", origin.DisplayName),
		zap.String("destination", destinationText),
	)
	destination, err := s.geocoder.Geocode(ctx, destinationText)
	if err != nil {
		return nil, s.fail(StageDestinationGeocode, err)
	}

	// Stage 5: identical points mean there is nothing to route. Rejected
	// before the routing call, not after.
	if origin.Coordinate.Equal(destination.Coordinate) {
		return nil, s.fail(StageSameLocation, planning.NewError(planning.KindSameLocation,
			"origin and destination are the same location: %s", origin.DisplayName))
	}

	// Stage 6: fetch the route.
	s.logger.Debug("fetching route",
		zap.String("origin_name", origin.DisplayName),
		zap.String("destination_name", destination.DisplayName),
		zap.String("vehicle", string(vehicle)),
	)
	route, err := s.router.Route(ctx, planning.RouteRequest{
		Origin:      origin.Coordinate,
		Destination: destination.Coordinate,
		Vehicle:     vehicle,
	})
	if err != nil {
		return nil, s.fail(StageRouting, err)
	}

	metrics.PlansTotal.WithLabelValues("success", "").Inc()
	s.logger.Info("route planned",
		zap.String("origin_name", origin.DisplayName),
		zap.String("destination_name", destination.DisplayName),
		zap.String("vehicle", string(vehicle)),
		zap.Float64("distance_meters", route.DistanceMeters),
		zap.Float64("duration_millis", route.DurationMillis),
	)

	return &RoutePlan{
		OriginName:      origin.DisplayName,
		DestinationName: destination.DisplayName,
		Origin:          origin.Coordinate,
		Destination:     destination.Coordinate,
		Vehicle:         vehicle,
		DistanceMeters:  route.DistanceMeters,
		DurationMillis:  route.DurationMillis,
		Instructions:    route.Instructions,
		Points:          route.Points,
	}, nil
}

func (s *PlannerService) fail(stage Stage, err error) *PlanError {
	planErr := newPlanError(stage, err)
	metrics.PlansTotal.WithLabelValues("failure", string(stage)).Inc()
	if planErr.Informational() {
		s.logger.Info("plan ended without a route",
			zap.String("stage", string(stage)),
			zap.String("kind", string(planErr.Kind)),
			zap.String("message", planErr.Message),
		)
	} else {
		s.logger.Warn("plan failed",
			zap.String("stage", string(stage)),
			zap.String("kind", string(planErr.Kind)),
			zap.String("message", planErr.Message),
		)
	}
	return planErr
}
