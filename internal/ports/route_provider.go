package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// One raw road leg returned by a routing engine: the drive between two
// consecutive route points before any range planning is applied.
// Geometry is an encoded polyline of the leg path and may be empty.
type RawLeg struct {
	Start       domain.Location
	End         domain.Location
	DistanceKm  float64
	DurationMin float64
	Geometry    string
}

// Contract for retrieving road legs between ordered route points.
type RouteProvider interface {
	// Return one leg per consecutive pair of
	// start, waypoints (in order), destination.
	GetRoute(ctx context.Context, start, destination domain.Location, waypoints []domain.Location) ([]RawLeg, error)
}
