package routing

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCachedRouteProviderServesSecondCallFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	start := domain.Location{Lat: 40.0, Lon: -74.0}
	dest := domain.Location{Lat: 42.0, Lon: -71.0}
	inner := NewMockRouteProvider([]ports.RawLeg{
		{Start: start, End: dest, DistanceKm: 300, DurationMin: 180},
	})

	cached := NewCachedRouteProvider(inner, client, time.Hour, slog.Default())

	first, err := cached.GetRoute(context.Background(), start, dest, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.GetRoute(context.Background(), start, dest, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.Calls != 1 {
		t.Fatalf("inner provider called %d times, want 1", inner.Calls)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Fatal("cached legs differ from fetched legs")
	}
}

func TestCachedRouteProviderKeysIncludeWaypoints(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	start := domain.Location{Lat: 40.0, Lon: -74.0}
	dest := domain.Location{Lat: 42.0, Lon: -71.0}
	wp := domain.Location{Lat: 41.0, Lon: -73.0}
	inner := NewMockRouteProvider([]ports.RawLeg{
		{Start: start, End: dest, DistanceKm: 300, DurationMin: 180},
	})

	cached := NewCachedRouteProvider(inner, client, time.Hour, slog.Default())

	if _, err := cached.GetRoute(context.Background(), start, dest, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.GetRoute(context.Background(), start, dest, []domain.Location{wp}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a different waypoint sequence must not hit the direct route's entry
	if inner.Calls != 2 {
		t.Fatalf("inner provider called %d times, want 2", inner.Calls)
	}
}

func TestCachedRouteProviderFallsThroughOnCacheFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close() // cache unreachable from the start

	start := domain.Location{Lat: 40.0, Lon: -74.0}
	dest := domain.Location{Lat: 42.0, Lon: -71.0}
	inner := NewMockRouteProvider([]ports.RawLeg{
		{Start: start, End: dest, DistanceKm: 300, DurationMin: 180},
	})

	cached := NewCachedRouteProvider(inner, client, time.Hour, slog.Default())

	legs, err := cached.GetRoute(context.Background(), start, dest, nil)
	if err != nil {
		t.Fatalf("unexpected error with cache down: %v", err)
	}
	if len(legs) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(legs))
	}
}
