package services

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/polyline"
	"ev-route-service/internal/ports"
	"fmt"
	"math"
)

// Float tolerance for distance comparisons, in kilometers.
const distEpsilonKm = 1e-6

// Candidates within this distance of each other count as equally near;
// the tie then goes to charging power, then station ID.
const stationTieKm = 0.05

// A segment under construction: pass one chooses stations, pass two
// fills in charge targets for the flagged segments.
type workingSegment struct {
	seg     domain.RouteSegment
	station domain.ChargingStation // zero value unless seg.IsChargingStop
}

// Pass one: walk the raw legs in order with a remaining-range counter.
// A leg that fits remaining range becomes one plain segment. A leg
// that does not is split at the chosen charging station's position and
// the remainder is retried with a refreshed counter.
func segmentRoute(
	ctx context.Context,
	legs []ports.RawLeg,
	vehicle domain.Vehicle,
	stations ports.StationDirectory,
	opts PlanningOptions,
) ([]workingSegment, error) {
	remaining := vehicle.RangeKm
	out := make([]workingSegment, 0, len(legs))

	for _, leg := range legs {
		// Bounded splits per leg: one stop per full-charge stretch plus
		// one for a zero-advance stop at the leg start. More means the
		// walk is not making progress.
		maxSplits := int(math.Ceil(leg.DistanceKm/vehicle.RangeKm)) + 1
		splits := 0

		cur := leg
		for cur.DistanceKm > remaining+distEpsilonKm {
			if splits >= maxSplits {
				return nil, &domain.InfeasibleRouteError{
					LegStart:   leg.Start,
					LegEnd:     leg.End,
					DistanceKm: leg.DistanceKm,
					Near:       cur.Start,
					Reason:     fmt.Sprintf("no progress after %d charging stops", splits),
				}
			}
			splits++

			reachable := pointAtKm(cur, remaining)

			candidates, err := stations.FindNearby(ctx, reachable, opts.StationRadiusKm)
			if err != nil {
				return nil, &domain.ExternalLookupError{Op: "find charging stations", Err: err}
			}

			chosen, alongKm, ok := chooseStation(cur, remaining, candidates)
			if !ok {
				return nil, &domain.InfeasibleRouteError{
					LegStart:   leg.Start,
					LegEnd:     leg.End,
					DistanceKm: leg.DistanceKm,
					Near:       reachable,
					Reason:     fmt.Sprintf("no reachable charging station within %.0f km", opts.StationRadiusKm),
				}
			}

			head, tail := splitLeg(cur, alongKm, chosen)
			out = append(out, workingSegment{seg: head, station: chosen})
			cur = tail
			remaining = vehicle.RangeKm
		}

		out = append(out, workingSegment{seg: domain.RouteSegment{
			Start:       cur.Start,
			End:         cur.End,
			DistanceKm:  cur.DistanceKm,
			DurationMin: cur.DurationMin,
			Geometry:    cur.Geometry,
		}})
		remaining -= cur.DistanceKm
	}

	return out, nil
}

// Furthest point along the leg reachable within km of driving, walking
// the leg path by accumulated great-circle distance.
func pointAtKm(leg ports.RawLeg, km float64) domain.Location {
	if km <= 0 {
		return leg.Start
	}
	if km >= leg.DistanceKm {
		return leg.End
	}

	pts := legPath(leg)
	total := pathLengthKm(pts)
	if total <= 0 {
		return leg.Start.PointAlong(leg.End, km/leg.DistanceKm)
	}
	return walkPath(pts, km/leg.DistanceKm*total)
}

// Decoded leg geometry when present and usable, otherwise the straight
// line between the endpoints.
func legPath(leg ports.RawLeg) []domain.Location {
	if leg.Geometry != "" {
		if pts, err := polyline.Decode(leg.Geometry); err == nil && len(pts) >= 2 {
			return pts
		}
	}
	return []domain.Location{leg.Start, leg.End}
}

// Point at the given distance along a decoded path.
func walkPath(pts []domain.Location, targetKm float64) domain.Location {
	acc := 0.0
	for i := 1; i < len(pts); i++ {
		step := pts[i-1].DistanceKm(pts[i])
		if acc+step >= targetKm {
			if step <= 0 {
				return pts[i]
			}
			return pts[i-1].PointAlong(pts[i], (targetKm-acc)/step)
		}
		acc += step
	}
	return pts[len(pts)-1]
}

// Sum of vertex-to-vertex distances along a decoded path.
func pathLengthKm(pts []domain.Location) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].DistanceKm(pts[i])
	}
	return total
}

// Pick the charging stop among the candidates near the reachable
// point. Unavailable stations and stations positioned beyond what
// remaining range can reach are not usable. The nearest candidate
// wins; equally near candidates prefer the highest power rating, with
// remaining ties broken by lexical order of station ID for
// determinism. Returns the station and its along-leg position.
func chooseStation(
	leg ports.RawLeg,
	remainingKm float64,
	candidates []ports.StationCandidate,
) (domain.ChargingStation, float64, bool) {
	var (
		best      ports.StationCandidate
		bestAlong float64
		found     bool
	)

	for _, c := range candidates {
		if !c.Station.Available {
			continue
		}
		along := stationAlongKm(leg, c.Station.Location)
		if along > remainingKm+distEpsilonKm {
			continue
		}
		if !found || better(c, best) {
			best = c
			bestAlong = along
			found = true
		}
	}

	if !found {
		return domain.ChargingStation{}, 0, false
	}
	if bestAlong > remainingKm {
		bestAlong = remainingKm
	}
	return best.Station, bestAlong, true
}

func better(a, b ports.StationCandidate) bool {
	if math.Abs(a.DistanceKm-b.DistanceKm) > stationTieKm {
		return a.DistanceKm < b.DistanceKm
	}
	if a.Station.PowerKW != b.Station.PowerKW {
		return a.Station.PowerKW > b.Station.PowerKW
	}
	return a.Station.ID < b.Station.ID
}

// Along-leg position of the station's closest approach, found by
// projecting the station onto each path segment and scaled to the
// leg's reported road distance. Clamped to the leg.
func stationAlongKm(leg ports.RawLeg, station domain.Location) float64 {
	pts := legPath(leg)
	total := pathLengthKm(pts)
	if total <= 0 {
		return 0
	}

	bestD := math.MaxFloat64
	bestAlong := 0.0
	acc := 0.0
	for i := 1; i < len(pts); i++ {
		step := pts[i-1].DistanceKm(pts[i])
		t, d := projectOnSegment(pts[i-1], pts[i], station)
		if d < bestD {
			bestD = d
			bestAlong = acc + t*step
		}
		acc += step
	}

	return clampKm(bestAlong/total*leg.DistanceKm, leg.DistanceKm)
}

// Fraction along segment a -> b of target's closest point, and the
// great-circle distance to that point. The projection uses an
// equirectangular local frame, which is accurate at path-segment
// scale.
func projectOnSegment(a, b, target domain.Location) (float64, float64) {
	cosLat := math.Cos(a.Lat * math.Pi / 180)
	bx := (b.Lon - a.Lon) * cosLat
	by := b.Lat - a.Lat
	px := (target.Lon - a.Lon) * cosLat
	py := target.Lat - a.Lat

	t := 0.0
	if den := bx*bx + by*by; den > 0 {
		t = (px*bx + py*by) / den
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}

	closest := domain.Location{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
	return t, target.DistanceKm(closest)
}

func clampKm(v, hi float64) float64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// Split the leg at alongKm, ending the head at the charging station.
// Distance and driving duration split proportionally; geometry splits
// at the matching point so the concatenated path stays gap-free.
func splitLeg(leg ports.RawLeg, alongKm float64, station domain.ChargingStation) (domain.RouteSegment, ports.RawLeg) {
	frac := 0.0
	if leg.DistanceKm > 0 {
		frac = alongKm / leg.DistanceKm
	}

	end := station.Location
	if end.Name == "" {
		end.Name = station.Name
	}

	headGeom, tailGeom := splitGeometry(leg.Geometry, frac)

	head := domain.RouteSegment{
		Start:          leg.Start,
		End:            end,
		DistanceKm:     alongKm,
		DurationMin:    leg.DurationMin * frac,
		IsChargingStop: true,
		Geometry:       headGeom,
	}
	tail := ports.RawLeg{
		Start:       end,
		End:         leg.End,
		DistanceKm:  leg.DistanceKm - alongKm,
		DurationMin: leg.DurationMin * (1 - frac),
		Geometry:    tailGeom,
	}
	return head, tail
}

// Split an encoded polyline at the given fraction of its own length.
// Both halves keep the split vertex. Unusable geometry is dropped
// rather than carried wrong.
func splitGeometry(geom string, frac float64) (string, string) {
	if geom == "" {
		return "", ""
	}
	pts, err := polyline.Decode(geom)
	if err != nil || len(pts) < 2 {
		return "", ""
	}
	total := pathLengthKm(pts)
	if total <= 0 {
		return "", ""
	}

	target := frac * total
	acc := 0.0
	for i := 1; i < len(pts); i++ {
		step := pts[i-1].DistanceKm(pts[i])
		if acc+step >= target {
			split := pts[i]
			if step > 0 {
				split = pts[i-1].PointAlong(pts[i], (target-acc)/step)
			}
			head := append(append([]domain.Location{}, pts[:i]...), split)
			tail := append([]domain.Location{split}, pts[i:]...)
			return polyline.Encode(head), polyline.Encode(tail)
		}
		acc += step
	}
	return polyline.Encode(pts), ""
}
