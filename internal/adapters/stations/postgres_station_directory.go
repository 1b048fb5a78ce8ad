package stations

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
)

// Postgres-backed implementation of the StationDirectory port. Same
// bounding-box prefilter as the SQLite variant, Postgres placeholders.
type PostgresStationDirectory struct{ DB *sql.DB }

func NewPostgresStationDirectory(db *sql.DB) *PostgresStationDirectory {
	return &PostgresStationDirectory{DB: db}
}

func (s *PostgresStationDirectory) FindNearby(
	ctx context.Context,
	near domain.Location,
	radiusKm float64,
) (_ []ports.StationCandidate, err error) {
	defer obs.Time(ctx, "stations.FindNearby")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres station directory: DB is nil")
	}

	minLat, maxLat, minLon, maxLon := boundingBox(near, radiusKm)

	query := `
	SELECT
		id,
		name,
		lat,
		lon,
		operator,
		connector,
		power_kw,
		available
	FROM charging_stations
	WHERE lat BETWEEN $1 AND $2
	  AND lon BETWEEN $3 AND $4
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("find nearby stations: query charging_stations table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.StationCandidate, 0, 16)
	for rows.Next() {
		var st domain.ChargingStation
		var lat, lon float64
		if err := rows.Scan(&st.ID, &st.Name, &lat, &lon, &st.Operator, &st.Connector, &st.PowerKW, &st.Available); err != nil {
			return nil, fmt.Errorf("find nearby stations: scan row: %w", err)
		}
		st.Location = domain.Location{Lat: lat, Lon: lon, Name: st.Name}

		dist := near.DistanceKm(st.Location)
		if dist <= radiusKm {
			out = append(out, ports.StationCandidate{Station: st, DistanceKm: dist})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find nearby stations: row iteration: %w", err)
	}

	sortCandidates(out)
	return out, nil
}
