package stations

import (
	"context"
	"ev-route-service/internal/domain"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStationDirectoryWarmAndFindNearby(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	dir := NewRedisStationDirectory(client)

	manhattan := domain.ChargingStation{
		ID:        "CS1",
		Name:      "Manhattan Supercharger",
		Location:  domain.Location{Lat: 40.7000, Lon: -74.0200},
		Operator:  "Volt Networks",
		Connector: "CCS",
		PowerKW:   150,
		Available: true,
	}
	boston := domain.ChargingStation{
		ID:        "CS7",
		Name:      "Boston Power Hub",
		Location:  domain.Location{Lat: 42.3500, Lon: -71.0700},
		Connector: "CHAdeMO",
		PowerKW:   100,
		Available: true,
	}

	if err := dir.Warm(context.Background(), []domain.ChargingStation{manhattan, boston}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := dir.FindNearby(context.Background(), domain.Location{Lat: 40.7128, Lon: -74.0060}, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Boston is ~300 km away and must not appear
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Station.ID != "CS1" {
		t.Fatalf("candidate = %s, want CS1", c.Station.ID)
	}
	if c.Station.Name != "Manhattan Supercharger" || c.Station.PowerKW != 150 || !c.Station.Available {
		t.Errorf("metadata not restored: %+v", c.Station)
	}
	if c.DistanceKm <= 0 || c.DistanceKm > 25 {
		t.Errorf("distance = %f km, want within (0, 25]", c.DistanceKm)
	}
}

func TestRedisStationDirectoryEmptyIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	dir := NewRedisStationDirectory(client)

	got, err := dir.FindNearby(context.Background(), domain.Location{Lat: 40.7, Lon: -74.0}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}
