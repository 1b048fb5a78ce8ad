package geocoding

import (
	"context"
	"ev-route-service/internal/domain"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// in-memory Cache for tests
type mapCache struct {
	m    map[string]domain.Location
	gets int
	puts int
}

func newMapCache() *mapCache { return &mapCache{m: map[string]domain.Location{}} }

func (c *mapCache) GetMany(ctx context.Context, queries []string) (map[string]domain.Location, error) {
	c.gets++
	out := map[string]domain.Location{}
	for _, q := range queries {
		if loc, ok := c.m[q]; ok {
			out[q] = loc
		}
	}
	return out, nil
}

func (c *mapCache) PutMany(ctx context.Context, results map[string]domain.Location) error {
	c.puts++
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestNominatimGeocoderParsesStringCoordinates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("q"); got != "New York" {
			t.Errorf("q = %q, want %q", got, "New York")
		}
		fmt.Fprint(w, `[{"lat":"40.7128","lon":"-74.0060","display_name":"New York, United States"}]`)
	}))
	defer srv.Close()

	cache := newMapCache()
	g, err := NewNominatimGeocoder(srv.URL, cache, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := g.Geocode(context.Background(), "  New   York ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Lat != 40.7128 || loc.Lon != -74.0060 {
		t.Errorf("location = (%f, %f), want (40.7128, -74.0060)", loc.Lat, loc.Lon)
	}
	if loc.Address != "New York, United States" {
		t.Errorf("address = %q", loc.Address)
	}

	// second lookup comes from the cache, not the API
	if _, err := g.Geocode(context.Background(), "New York"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("API called %d times, want 1", calls)
	}
	if cache.puts != 1 {
		t.Fatalf("cache writes = %d, want 1", cache.puts)
	}
}

func TestNominatimGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	g, err := NewNominatimGeocoder(srv.URL, nil, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.Geocode(context.Background(), "Nowhereville"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestNominatimGeocoderRejectsEmptyQuery(t *testing.T) {
	g, err := NewNominatimGeocoder("https://nominatim.example", nil, slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.Geocode(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank query")
	}
}
