package stations

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const geoKey = "ev:stations"

// RedisStationDirectory implements the StationDirectory port over a
// Redis GEO index. Station positions live in a single GEO key; the
// remaining attributes are stored per station in a metadata hash.
// The index is populated by Warm (see cmd/dbtool -warm-redis).
type RedisStationDirectory struct {
	client *redis.Client
}

func NewRedisStationDirectory(client *redis.Client) *RedisStationDirectory {
	return &RedisStationDirectory{client: client}
}

func (d *RedisStationDirectory) FindNearby(
	ctx context.Context,
	near domain.Location,
	radiusKm float64,
) ([]ports.StationCandidate, error) {
	if d.client == nil {
		return nil, errors.New("redis station directory: client is nil")
	}

	res, err := d.client.GeoRadius(ctx, geoKey, near.Lon, near.Lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("find nearby stations: georadius: %w", err)
	}

	out := make([]ports.StationCandidate, 0, len(res))
	for _, g := range res {
		st := domain.ChargingStation{
			ID:       g.Name,
			Location: domain.Location{Lat: g.Latitude, Lon: g.Longitude},
		}

		meta, err := d.client.HGetAll(ctx, metaKey(g.Name)).Result()
		if err != nil {
			return nil, fmt.Errorf("find nearby stations: metadata for %s: %w", g.Name, err)
		}
		st.Name = meta["name"]
		st.Operator = meta["operator"]
		st.Connector = meta["connector"]
		if v, ok := meta["power_kw"]; ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				st.PowerKW = f
			}
		}
		st.Available = meta["available"] == "true"
		st.Location.Name = st.Name

		out = append(out, ports.StationCandidate{Station: st, DistanceKm: g.Dist})
	}

	return out, nil
}

// Warm loads the given stations into the GEO index and their metadata
// hashes, replacing previous entries with the same ID.
func (d *RedisStationDirectory) Warm(ctx context.Context, list []domain.ChargingStation) error {
	if d.client == nil {
		return errors.New("redis station directory: client is nil")
	}

	for _, st := range list {
		if err := d.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      st.ID,
			Longitude: st.Location.Lon,
			Latitude:  st.Location.Lat,
		}).Err(); err != nil {
			return fmt.Errorf("warm stations: geoadd %s: %w", st.ID, err)
		}

		if err := d.client.HSet(ctx, metaKey(st.ID), map[string]interface{}{
			"name":      st.Name,
			"operator":  st.Operator,
			"connector": st.Connector,
			"power_kw":  strconv.FormatFloat(st.PowerKW, 'f', -1, 64),
			"available": strconv.FormatBool(st.Available),
		}).Err(); err != nil {
			return fmt.Errorf("warm stations: metadata %s: %w", st.ID, err)
		}
	}

	return nil
}

func metaKey(id string) string { return "ev:station:meta:" + id }
