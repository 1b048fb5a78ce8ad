package routing

import (
	"context"
	"encoding/json"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRouteProvider decorates a RouteProvider with a Redis cache
// keyed by the coordinate sequence. Road geometry between fixed points
// changes rarely, so cached legs are reused across requests for the
// configured TTL. Cache failures degrade to the inner provider.
type CachedRouteProvider struct {
	inner  ports.RouteProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRouteProvider(inner ports.RouteProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRouteProvider {
	return &CachedRouteProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "route_cache"),
	}
}

func (c *CachedRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) ([]ports.RawLeg, error) {
	key := routeKey(start, destination, waypoints)

	val, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var legs []ports.RawLeg
		if err := json.Unmarshal(val, &legs); err == nil {
			c.logger.Debug("cache hit", "key", key, "legs", len(legs))
			return legs, nil
		}
		c.logger.Warn("cache entry unreadable, refetching", "key", key)
	} else if err != redis.Nil {
		c.logger.Error("cache get failed", "key", key, "error", err)
	}

	legs, err := c.inner.GetRoute(ctx, start, destination, waypoints)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(legs); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Error("cache set failed", "key", key, "error", err)
		}
	}

	return legs, nil
}

// Cache key over the exact coordinate sequence, at the same precision
// the routing engine is queried with.
func routeKey(start, destination domain.Location, waypoints []domain.Location) string {
	key := fmt.Sprintf("ev:route:%f,%f", start.Lon, start.Lat)
	for _, wp := range waypoints {
		key += fmt.Sprintf(";%f,%f", wp.Lon, wp.Lat)
	}
	key += fmt.Sprintf(";%f,%f", destination.Lon, destination.Lat)
	return key
}
