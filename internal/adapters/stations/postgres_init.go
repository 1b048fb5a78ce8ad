package stations

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS charging_stations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		operator TEXT NOT NULL DEFAULT '',
		connector TEXT NOT NULL DEFAULT '',
		power_kw DOUBLE PRECISION NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_charging_stations_lat_lon
    ON charging_stations(lat, lon);
	`

	statements := []string{
		createStationsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate a Postgres database with charging stations from a JSON file.
func SeedFromJSONPostgres(db *sql.DB, jsonPath string) error {
	rows, err := loadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO charging_stations (
		id,
		name,
		lat,
		lon,
		operator,
		connector,
		power_kw,
		available
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		operator = EXCLUDED.operator,
		connector = EXCLUDED.connector,
		power_kw = EXCLUDED.power_kw,
		available = EXCLUDED.available;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.Exec(s.ID, s.Name, s.Latitude, s.Longitude, s.Operator, s.Connector, s.PowerKW, s.Available); err != nil {
			return fmt.Errorf("seed stations: insert id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}
