package stations

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
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
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		operator TEXT NOT NULL DEFAULT '',
		connector TEXT NOT NULL DEFAULT '',
		power_kw REAL NOT NULL,
		available INTEGER NOT NULL DEFAULT 1
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL,
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

type StationSeed struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Operator  string  `json:"operator"`
	Connector string  `json:"connector"`
	PowerKW   float64 `json:"power_kw"`
	Available bool    `json:"available"`
}

// Populate the database with charging stations from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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
	INSERT OR REPLACE INTO charging_stations (
		id,
		name,
		lat,
		lon,
		operator,
		connector,
		power_kw,
		available
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
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

func loadSeeds(jsonPath string) ([]StationSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed stations: parse json: %w", err)
	}

	rows := make([]StationSeed, 0, len(data))
	for i, item := range data {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("seed stations: missing id at index %d", i+1)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("seed stations: item id=%s: name cannot be empty", item.ID)
		}
		if item.PowerKW <= 0 {
			return nil, fmt.Errorf("seed stations: item id=%s: power_kw must be positive, got %v", item.ID, item.PowerKW)
		}
		rows = append(rows, item)
	}

	return rows, nil
}
