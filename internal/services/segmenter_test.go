package services

import (
	"ev-route-service/internal/domain"
	"ev-route-service/internal/polyline"
	"ev-route-service/internal/ports"
	"testing"
)

func TestPointAtKmFollowsGeometry(t *testing.T) {
	// L-shaped path: 100 km east, then 100 km north
	a := domain.Location{Lat: 40.0, Lon: -74.0}
	corner := kmEast(a, 100)
	b := kmNorth(corner, 100)
	geom := polyline.Encode([]domain.Location{a, corner, b})

	leg := ports.RawLeg{Start: a, End: b, DistanceKm: 200, DurationMin: 120, Geometry: geom}

	// 150 km in is 50 km up the northbound arm
	got := pointAtKm(leg, 150)
	want := kmNorth(corner, 50)
	if d := got.DistanceKm(want); d > 0.5 {
		t.Fatalf("pointAtKm(150) is %.3f km from the expected point", d)
	}

	// without geometry the straight line between endpoints is used
	bare := ports.RawLeg{Start: a, End: b, DistanceKm: 200}
	got = pointAtKm(bare, 100)
	want = a.PointAlong(b, 0.5)
	if d := got.DistanceKm(want); d > 0.001 {
		t.Fatalf("straight-line pointAtKm is %.4f km from the midpoint", d)
	}

	// out-of-range targets clamp to the endpoints
	if p := pointAtKm(leg, -5); p != a {
		t.Error("negative distance should return the leg start")
	}
	if p := pointAtKm(leg, 250); p != b {
		t.Error("beyond-leg distance should return the leg end")
	}
}

func TestStationAlongKmProjectsOntoPath(t *testing.T) {
	a := domain.Location{Lat: 40.0, Lon: -74.0}
	corner := kmEast(a, 100)
	b := kmNorth(corner, 100)
	geom := polyline.Encode([]domain.Location{a, corner, b})
	leg := ports.RawLeg{Start: a, End: b, DistanceKm: 200, Geometry: geom}

	// a station on the second arm sits past the corner
	if got := stationAlongKm(leg, kmNorth(corner, 5)); !near(got, 105, 0.5) {
		t.Errorf("on-path station along = %.3f, want ~105", got)
	}

	// an off-path station projects to its closest approach
	if got := stationAlongKm(leg, kmEast(kmNorth(corner, 50), 10)); !near(got, 150, 0.5) {
		t.Errorf("off-path station along = %.3f, want ~150", got)
	}

	// straight-line fallback clamps a behind-start station to zero
	bare := ports.RawLeg{Start: a, End: kmNorth(a, 100), DistanceKm: 100}
	if got := stationAlongKm(bare, kmNorth(a, -20)); got != 0 {
		t.Errorf("behind-start station along = %.3f, want 0", got)
	}
}

func TestSplitGeometryKeepsPathGapFree(t *testing.T) {
	a := domain.Location{Lat: 40.0, Lon: -74.0}
	corner := kmEast(a, 100)
	b := kmNorth(corner, 100)
	pts := []domain.Location{a, corner, b}
	geom := polyline.Encode(pts)

	headGeom, tailGeom := splitGeometry(geom, 0.75)
	head, err := polyline.Decode(headGeom)
	if err != nil {
		t.Fatalf("head did not decode: %v", err)
	}
	tail, err := polyline.Decode(tailGeom)
	if err != nil {
		t.Fatalf("tail did not decode: %v", err)
	}

	if len(head) < 2 || len(tail) < 2 {
		t.Fatalf("degenerate halves: %d and %d points", len(head), len(tail))
	}
	if head[len(head)-1] != tail[0] {
		t.Fatal("head and tail do not share the split vertex")
	}
	if d := head[0].DistanceKm(a); d > 0.01 {
		t.Errorf("head start drifted %.4f km", d)
	}
	if d := tail[len(tail)-1].DistanceKm(b); d > 0.01 {
		t.Errorf("tail end drifted %.4f km", d)
	}

	total := pathLengthKm(pts)
	sum := pathLengthKm(head) + pathLengthKm(tail)
	if !near(sum, total, 0.01) {
		t.Errorf("split lengths sum to %.4f, path is %.4f", sum, total)
	}
	if !near(pathLengthKm(head), 0.75*total, 0.5) {
		t.Errorf("head length = %.4f, want ~%.4f", pathLengthKm(head), 0.75*total)
	}

	// unusable geometry is dropped, not carried wrong
	if h, tl := splitGeometry("", 0.5); h != "" || tl != "" {
		t.Error("empty geometry should split to empty halves")
	}
	if h, tl := splitGeometry("!!!", 0.5); h != "" || tl != "" {
		t.Error("malformed geometry should split to empty halves")
	}
}

func TestChooseStationTieBreaks(t *testing.T) {
	a := domain.Location{Lat: 40.0, Lon: -74.0}
	leg := ports.RawLeg{Start: a, End: kmNorth(a, 500), DistanceKm: 500}
	reachable := kmNorth(a, 300)

	mk := func(id string, alongKm, eastKm, powerKW float64, available bool) ports.StationCandidate {
		loc := kmEast(kmNorth(a, alongKm), eastKm)
		loc.Name = id
		return ports.StationCandidate{
			Station: domain.ChargingStation{
				ID: id, Name: id, Location: loc, PowerKW: powerKW, Available: available,
			},
			DistanceKm: reachable.DistanceKm(loc),
		}
	}

	// nearest candidate wins outright
	got, along, ok := chooseStation(leg, 300, []ports.StationCandidate{
		mk("CS2", 280, 0, 50, true),
		mk("CS1", 295, 0, 50, true),
	})
	if !ok || got.ID != "CS1" {
		t.Fatalf("chose %q, want CS1 (nearest)", got.ID)
	}
	if !near(along, 295, 0.5) {
		t.Fatalf("along = %.3f, want ~295", along)
	}

	// equally near: the higher power rating wins
	got, _, ok = chooseStation(leg, 300, []ports.StationCandidate{
		mk("CS1", 300, 10, 50, true),
		mk("CS2", 300, -10, 150, true),
	})
	if !ok || got.ID != "CS2" {
		t.Fatalf("chose %q, want CS2 (more power)", got.ID)
	}

	// equal power: lexical station ID for determinism
	got, _, ok = chooseStation(leg, 300, []ports.StationCandidate{
		mk("CS9", 300, 10, 150, true),
		mk("CS3", 300, -10, 150, true),
	})
	if !ok || got.ID != "CS3" {
		t.Fatalf("chose %q, want CS3 (lexical tie-break)", got.ID)
	}

	// unavailable and beyond-reach candidates are unusable
	_, _, ok = chooseStation(leg, 300, []ports.StationCandidate{
		mk("CS1", 295, 0, 150, false),
		mk("CS2", 310, 0, 150, true),
	})
	if ok {
		t.Fatal("expected no usable candidate")
	}
}

func TestSplitLegProportions(t *testing.T) {
	a := domain.Location{Lat: 40.0, Lon: -74.0}
	b := kmNorth(a, 500)
	leg := ports.RawLeg{Start: a, End: b, DistanceKm: 500, DurationMin: 300}
	station := domain.ChargingStation{
		ID: "CS1", Name: "Midway", Location: kmNorth(a, 290), PowerKW: 150, Available: true,
	}

	head, tail := splitLeg(leg, 290, station)

	if !head.IsChargingStop {
		t.Fatal("head must be flagged as a charging stop")
	}
	if head.DistanceKm != 290 || tail.DistanceKm != 210 {
		t.Fatalf("split = %.1f + %.1f, want 290 + 210", head.DistanceKm, tail.DistanceKm)
	}
	if !near(head.DurationMin, 174, 1e-9) || !near(tail.DurationMin, 126, 1e-9) {
		t.Fatalf("durations = %.4f + %.4f, want 174 + 126", head.DurationMin, tail.DurationMin)
	}
	if head.End.Name != "Midway" {
		t.Errorf("head end name = %q, want the station name", head.End.Name)
	}
	if tail.Start != head.End || head.Start != a || tail.End != b {
		t.Error("split does not concatenate start -> station -> end")
	}
}
