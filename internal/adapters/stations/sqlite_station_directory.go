package stations

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
	"math"
	"sort"
)

// One degree of latitude spans ~111.19 km; used to turn a km radius
// into a coordinate bounding box for the SQL prefilter.
const kmPerDegree = 111.19492664455873

// SQLite-backed implementation of the StationDirectory port. The SQL
// query prefilters by bounding box; exact great-circle distances are
// computed and sorted in Go.
type SqliteStationDirectory struct{ DB *sql.DB }

func NewSqliteStationDirectory(db *sql.DB) *SqliteStationDirectory {
	return &SqliteStationDirectory{DB: db}
}

func (s *SqliteStationDirectory) FindNearby(
	ctx context.Context,
	near domain.Location,
	radiusKm float64,
) ([]ports.StationCandidate, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station directory: DB is nil")
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
	WHERE lat BETWEEN ? AND ?
	  AND lon BETWEEN ? AND ?
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

func boundingBox(near domain.Location, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	latDelta := radiusKm / kmPerDegree

	cosLat := math.Cos(near.Lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01 // degenerate near the poles; box covers all longitudes
	}
	lonDelta := radiusKm / (kmPerDegree * cosLat)

	return near.Lat - latDelta, near.Lat + latDelta, near.Lon - lonDelta, near.Lon + lonDelta
}

func sortCandidates(out []ports.StationCandidate) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].Station.ID < out[j].Station.ID
	})
}
