// Package polyline implements the Google encoded polyline format at
// the standard 1e-5 degree precision. Paths are carried as ordered
// Location sequences; the codec is exact for round-trips at that
// precision.
package polyline

import (
	"errors"
	"ev-route-service/internal/domain"
	"fmt"
	"math"
	"strings"
)

const precision = 1e5

// Encode a path as an encoded polyline string.
func Encode(points []domain.Location) string {
	var b strings.Builder
	prevLat, prevLon := 0, 0
	for _, p := range points {
		lat := int(math.Round(p.Lat * precision))
		lon := int(math.Round(p.Lon * precision))
		writeValue(&b, lat-prevLat)
		writeValue(&b, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return b.String()
}

// Decode an encoded polyline string into its path. A malformed or
// truncated string is an error; an empty string is an empty path.
func Decode(s string) ([]domain.Location, error) {
	var points []domain.Location
	lat, lon := 0, 0

	for i := 0; i < len(s); {
		dLat, n, err := readValue(s[i:])
		if err != nil {
			return nil, fmt.Errorf("decode polyline: latitude at byte %d: %w", i, err)
		}
		i += n

		dLon, n, err := readValue(s[i:])
		if err != nil {
			return nil, fmt.Errorf("decode polyline: longitude at byte %d: %w", i, err)
		}
		i += n

		lat += dLat
		lon += dLon
		points = append(points, domain.Location{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return points, nil
}

// Append one zig-zag varint in the 5-bit, 63-offset wire form.
func writeValue(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	b.WriteByte(byte(u) + 63)
}

// Read one value, returning it and the number of bytes consumed.
func readValue(s string) (int, int, error) {
	result, shift := 0, 0
	for i := 0; i < len(s); i++ {
		c := int(s[i]) - 63
		if c < 0 {
			return 0, 0, errors.New("character below offset")
		}
		result |= (c & 0x1f) << shift
		shift += 5
		if c < 0x20 {
			v := result >> 1
			if result&1 != 0 {
				v = ^v
			}
			return v, i + 1, nil
		}
	}
	return 0, 0, errors.New("unterminated value")
}
