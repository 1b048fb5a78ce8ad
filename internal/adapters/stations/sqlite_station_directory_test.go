package stations

import (
	"context"
	"database/sql"
	"ev-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "stations.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedTestStations(t *testing.T, db *sql.DB) {
	t.Helper()
	seeds := `[
		{"id":"CS1","name":"Manhattan Supercharger","latitude":40.7000,"longitude":-74.0200,"connector":"CCS","power_kw":150,"available":true},
		{"id":"CS2","name":"Brooklyn Charging Hub","latitude":40.6892,"longitude":-73.9800,"connector":"CHAdeMO","power_kw":100,"available":true},
		{"id":"CS7","name":"Boston Power Hub","latitude":42.3500,"longitude":-71.0700,"connector":"CCS","power_kw":150,"available":true}
	]`
	path := filepath.Join(t.TempDir(), "stations.json")
	if err := os.WriteFile(path, []byte(seeds), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSqliteStationDirectoryFindNearby(t *testing.T) {
	db := openTestDB(t)
	seedTestStations(t, db)

	dir := NewSqliteStationDirectory(db)
	newYork := domain.Location{Lat: 40.7128, Lon: -74.0060}

	got, err := dir.FindNearby(context.Background(), newYork, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CS1 and CS2 are within 10 km of downtown NYC; Boston is not
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].DistanceKm > got[1].DistanceKm {
		t.Error("candidates not sorted closest first")
	}
	for _, c := range got {
		if c.Station.ID == "CS7" {
			t.Error("Boston station returned for an NYC query")
		}
		if c.DistanceKm > 10 {
			t.Errorf("candidate %s at %f km exceeds the radius", c.Station.ID, c.DistanceKm)
		}
		if c.Station.PowerKW <= 0 {
			t.Errorf("candidate %s missing power rating", c.Station.ID)
		}
	}
}

func TestSqliteStationDirectoryEmptyRadius(t *testing.T) {
	db := openTestDB(t)
	seedTestStations(t, db)

	dir := NewSqliteStationDirectory(db)
	middleOfOcean := domain.Location{Lat: 30.0, Lon: -50.0}

	got, err := dir.FindNearby(context.Background(), middleOfOcean, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestSeedFromJSONRejectsBadRows(t *testing.T) {
	db := openTestDB(t)

	bad := `[{"id":"","name":"Nameless","latitude":1,"longitude":1,"power_kw":50,"available":true}]`
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	if err := SeedFromJSON(db, path); err == nil {
		t.Fatal("expected error for missing station id")
	}
}
