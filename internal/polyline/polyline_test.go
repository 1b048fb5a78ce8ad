package polyline

import (
	"ev-route-service/internal/domain"
	"math"
	"testing"
)

// Reference vector from the format documentation.
func TestEncodeKnownVector(t *testing.T) {
	points := []domain.Location{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	got := Encode(points)
	want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestDecodeKnownVector(t *testing.T) {
	got, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Location{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].Lat-want[i].Lat) > 1e-5 || math.Abs(got[i].Lon-want[i].Lon) > 1e-5 {
			t.Errorf("point %d = (%f, %f), want (%f, %f)", i, got[i].Lat, got[i].Lon, want[i].Lat, want[i].Lon)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	points := []domain.Location{
		{Lat: 40.7128, Lon: -74.0060},
		{Lat: 41.2033, Lon: -77.1945},
		{Lat: 40.4406, Lon: -79.9959},
		{Lat: 41.4993, Lon: -81.6944},
	}

	decoded, err := Decode(Encode(points))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != len(points) {
		t.Fatalf("round trip %d points, want %d", len(decoded), len(points))
	}
	for i := range points {
		if math.Abs(decoded[i].Lat-points[i].Lat) > 1e-5 || math.Abs(decoded[i].Lon-points[i].Lon) > 1e-5 {
			t.Errorf("point %d drifted: (%f, %f) vs (%f, %f)", i, decoded[i].Lat, decoded[i].Lon, points[i].Lat, points[i].Lon)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("decoded %d points from empty string, want 0", len(got))
	}
}

func TestDecodeMalformed(t *testing.T) {
	// truncated trailing value and an out-of-range byte
	for _, s := range []string{"_p~iF~ps|U_", "_p~iF\x1f"} {
		if _, err := Decode(s); err == nil {
			t.Errorf("Decode(%q) expected error", s)
		}
	}
}
