package services

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
)

// Documented defaults for the tunable planning parameters. They apply
// whenever the corresponding PlanningOptions field is left zero.
const (
	DefaultStationRadiusKm = 25.0
	DefaultSafetyMarginPct = 10.0
	DefaultBatteryKWh      = 75.0
	DefaultMaxWaypoints    = 25
)

// Tunable planning parameters. The zero value selects the documented
// defaults and the linear charge curve.
type PlanningOptions struct {
	StationRadiusKm float64     // search radius around a low-charge point
	SafetyMarginPct float64     // charge-target margin, absolute percentage points
	BatteryKWh      float64     // usable battery capacity assumed for charging time
	MaxWaypoints    int         // request validation bound
	Curve           ChargeCurve // charging time model, nil means LinearCurve
}

func (o PlanningOptions) withDefaults() PlanningOptions {
	if o.StationRadiusKm <= 0 {
		o.StationRadiusKm = DefaultStationRadiusKm
	}
	if o.SafetyMarginPct <= 0 {
		o.SafetyMarginPct = DefaultSafetyMarginPct
	}
	if o.BatteryKWh <= 0 {
		o.BatteryKWh = DefaultBatteryKWh
	}
	if o.MaxWaypoints <= 0 {
		o.MaxWaypoints = DefaultMaxWaypoints
	}
	if o.Curve == nil {
		o.Curve = LinearCurve{}
	}
	return o
}

// Compute a charging-aware itinerary for a single route request.
//
// The raw road legs are walked with a remaining-range counter. Any leg
// that exceeds remaining range is split at the furthest reachable
// point and the nearest charging station there becomes a charging
// stop; charge targets then cover the full distance to the next charge
// opportunity plus a safety margin. The design prioritizes determinism
// and simplicity over optimality.
//
// The computation is all-or-nothing: on any failure no partial plan is
// returned. Validation failures are *domain.InvalidInputError,
// range failures *domain.InfeasibleRouteError, collaborator failures
// *domain.ExternalLookupError.
func CalculateRoute(
	ctx context.Context,
	req domain.RouteRequest,
	provider ports.RouteProvider,
	stations ports.StationDirectory,
	opts PlanningOptions,
) (*domain.RoutePlan, error) {
	opts = opts.withDefaults()

	if err := validateRequest(req, opts.MaxWaypoints); err != nil {
		return nil, err
	}

	vehicle, err := domain.NewVehicle(req.VehicleRangeKm, opts.BatteryKWh)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	legs, err := provider.GetRoute(ctx, req.Start, req.Destination, req.Waypoints)
	if err != nil {
		return nil, &domain.ExternalLookupError{Op: "get route", Err: err}
	}
	if len(legs) == 0 {
		return nil, &domain.ExternalLookupError{
			Op:  "get route",
			Err: fmt.Errorf("routing engine returned no legs for %s -> %s", req.Start.Label(), req.Destination.Label()),
		}
	}

	work, err := segmentRoute(ctx, legs, vehicle, stations, opts)
	if err != nil {
		return nil, err
	}

	if err := planCharging(work, vehicle, opts.Curve, opts.SafetyMarginPct); err != nil {
		return nil, err
	}

	return summarize(work), nil
}

// Reject bad requests before any planning work or external call.
func validateRequest(req domain.RouteRequest, maxWaypoints int) error {
	if req.VehicleRangeKm <= 0 {
		return &domain.InvalidInputError{
			Field:  "vehicle_range",
			Reason: fmt.Sprintf("must be > 0, got %.1f", req.VehicleRangeKm),
		}
	}
	if !req.Start.InBounds() {
		return &domain.InvalidInputError{Field: "start", Reason: "coordinates out of range"}
	}
	if !req.Destination.InBounds() {
		return &domain.InvalidInputError{Field: "destination", Reason: "coordinates out of range"}
	}
	if len(req.Waypoints) > maxWaypoints {
		return &domain.InvalidInputError{
			Field:  "waypoints",
			Reason: fmt.Sprintf("at most %d waypoints supported, got %d", maxWaypoints, len(req.Waypoints)),
		}
	}
	for i, wp := range req.Waypoints {
		if !wp.InBounds() {
			return &domain.InvalidInputError{
				Field:  fmt.Sprintf("waypoints[%d]", i),
				Reason: "coordinates out of range",
			}
		}
	}
	return nil
}
