package stations

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"sort"
)

// Deterministic in-memory station directory for tests: answers
// proximity queries over a fixed station set with great-circle
// distances, closest first, and counts calls.
type MockStationDirectory struct {
	Stations []domain.ChargingStation
	Err      error
	Calls    int
}

func NewMockStationDirectory(stations []domain.ChargingStation) *MockStationDirectory {
	return &MockStationDirectory{Stations: stations}
}

func (d *MockStationDirectory) FindNearby(
	ctx context.Context,
	near domain.Location,
	radiusKm float64,
) ([]ports.StationCandidate, error) {
	d.Calls++
	if d.Err != nil {
		return nil, d.Err
	}

	out := []ports.StationCandidate{}
	for _, s := range d.Stations {
		dist := near.DistanceKm(s.Location)
		if dist <= radiusKm {
			out = append(out, ports.StationCandidate{Station: s, DistanceKm: dist})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Station.ID < out[j].Station.ID
	})
	return out, nil
}
