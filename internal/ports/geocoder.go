package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Port: a boundary for resolving a free-form place name to coordinates.
type Geocoder interface {
	// Return the best-match location for the query.
	Geocode(ctx context.Context, query string) (domain.Location, error)
}
