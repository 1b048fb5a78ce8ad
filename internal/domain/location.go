package domain

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Immutable geographic point (latitude, longitude in decimal degrees).
// Name and Address are optional display labels; location identity is
// positional only.
type Location struct {
	Lat     float64
	Lon     float64
	Name    string
	Address string
}

// Great-circle distance to another location in kilometers (haversine).
func (l Location) DistanceKm(o Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := (o.Lat - l.Lat) * math.Pi / 180
	dLon := (o.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// Point reached after traveling frac of the straight line towards o.
// Linear interpolation in degree space; frac is clamped to [0, 1].
func (l Location) PointAlong(o Location, frac float64) Location {
	if frac <= 0 {
		return Location{Lat: l.Lat, Lon: l.Lon}
	}
	if frac >= 1 {
		return Location{Lat: o.Lat, Lon: o.Lon}
	}
	return Location{
		Lat: l.Lat + (o.Lat-l.Lat)*frac,
		Lon: l.Lon + (o.Lon-l.Lon)*frac,
	}
}

// Human-readable label for logs and error messages.
func (l Location) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("(%.4f, %.4f)", l.Lat, l.Lon)
}

// Reports whether latitude and longitude are within valid ranges.
func (l Location) InBounds() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}
