package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// A charging station together with its distance from the query point.
type StationCandidate struct {
	Station    domain.ChargingStation
	DistanceKm float64
}

// Port: a boundary for querying charging stations around a point.
type StationDirectory interface {
	// Return candidate stations within radiusKm of near, closest first.
	FindNearby(ctx context.Context, near domain.Location, radiusKm float64) ([]StationCandidate, error)
}
