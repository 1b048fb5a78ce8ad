package routing

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/polyline"
	"ev-route-service/internal/ports"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OSRMRouteProvider implements RouteProvider against an OSRM instance
// (/route/v1/driving). One leg is returned per consecutive pair of
// route points; leg geometry is assembled from the step geometries so
// each leg carries its own path rather than the whole-route overview.
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL string) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		profile: "driving",
	}, nil
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Geometry string `json:"geometry"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute fetches the road path through the ordered route points.
// OSRM reports meters and seconds; legs are converted to km and minutes.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	start, destination domain.Location,
	waypoints []domain.Location,
) (_ []ports.RawLeg, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)
	startedAt := time.Now()
	defer func() {
		obs.ExternalLookupDuration.WithLabelValues("route").Observe(time.Since(startedAt).Seconds())
	}()

	points := make([]domain.Location, 0, 2+len(waypoints))
	points = append(points, start)
	points = append(points, waypoints...)
	points = append(points, destination)

	// OSRM wants lon,lat pairs joined by semicolons.
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lon, p.Lat))
	}
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", o.baseURL, o.profile, strings.Join(coords, ";"))

	makeReq := func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("overview", "full")
		q.Set("steps", "true")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := o.doWithRetry(ctx, makeReq)
	if err != nil {
		return nil, fmt.Errorf("osrm route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("osrm returned code %q: %s", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("osrm returned no routes")
	}

	route := decoded.Routes[0]
	if len(route.Legs) != len(points)-1 {
		return nil, fmt.Errorf("osrm returned %d legs for %d route points", len(route.Legs), len(points))
	}

	legs := make([]ports.RawLeg, 0, len(route.Legs))
	for i, leg := range route.Legs {
		geom := route.Geometry
		if len(route.Legs) > 1 {
			geom = assembleLegGeometry(leg.Steps)
		}
		legs = append(legs, ports.RawLeg{
			Start:       points[i],
			End:         points[i+1],
			DistanceKm:  leg.Distance / 1000,
			DurationMin: leg.Duration / 60,
			Geometry:    geom,
		})
	}

	return legs, nil
}

// Concatenate step geometries into one encoded path for the leg,
// dropping the duplicated join vertex between consecutive steps.
func assembleLegGeometry(steps []struct {
	Geometry string `json:"geometry"`
}) string {
	var path []domain.Location
	for _, step := range steps {
		pts, err := polyline.Decode(step.Geometry)
		if err != nil || len(pts) == 0 {
			continue
		}
		if len(path) > 0 && path[len(path)-1] == pts[0] {
			pts = pts[1:]
		}
		path = append(path, pts...)
	}
	if len(path) < 2 {
		return ""
	}
	return polyline.Encode(path)
}
