package routing

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
)

// Deterministic in-memory route provider for tests: returns the
// configured legs (or error) for any request and counts calls.
type MockRouteProvider struct {
	Legs  []ports.RawLeg
	Err   error
	Calls int
}

func NewMockRouteProvider(legs []ports.RawLeg) *MockRouteProvider {
	return &MockRouteProvider{Legs: legs}
}

func (p *MockRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) ([]ports.RawLeg, error) {
	p.Calls++
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Legs, nil
}
