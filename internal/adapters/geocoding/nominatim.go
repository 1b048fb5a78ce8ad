package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Cache is the persistent query -> location store consulted before
// Nominatim is called. Both SQL cache implementations satisfy it.
type Cache interface {
	GetMany(ctx context.Context, queries []string) (map[string]domain.Location, error)
	PutMany(ctx context.Context, results map[string]domain.Location) error
}

// NominatimGeocoder resolves free-form place names through the
// Nominatim search API, with an optional persistent cache in front.
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
	cache   Cache
	logger  *slog.Logger
}

func NewNominatimGeocoder(baseURL string, cache Cache, logger *slog.Logger) (*NominatimGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nominatim base URL is empty")
	}

	return &NominatimGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		cache:   cache,
		logger:  logger.With("component", "geocoder"),
	}, nil
}

// Nominatim returns coordinates as JSON strings, not numbers.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves the query to its best-match location.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)
	startedAt := time.Now()
	defer func() {
		obs.ExternalLookupDuration.WithLabelValues("geocode").Observe(time.Since(startedAt).Seconds())
	}()

	norm := strings.Join(strings.Fields(query), " ")
	if norm == "" {
		return domain.Location{}, errors.New("geocode: query must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Location{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if loc, ok := hits[norm]; ok {
			return loc, nil
		}
	}

	loc, err := g.fetch(ctx, norm)
	if err != nil {
		return domain.Location{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Location{norm: loc}); err != nil {
			g.logger.Warn("geocode cache write failed", "query", norm, "error", err)
		}
	}

	return loc, nil
}

func (g *NominatimGeocoder) fetch(ctx context.Context, query string) (domain.Location, error) {
	endpoint := g.baseURL + "/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("create geocode request: %w", err)
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return domain.Location{}, fmt.Errorf("geocode status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("no geocode results for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse geocode latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse geocode longitude %q: %w", results[0].Lon, err)
	}

	return domain.Location{
		Lat:     lat,
		Lon:     lon,
		Name:    query,
		Address: results[0].DisplayName,
	}, nil
}
