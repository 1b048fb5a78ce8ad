package services

import "ev-route-service/internal/domain"

// Pass three: reduce the finished segments into the response plan.
// Totals are pure sums over the segments; total duration includes
// charging time. Charging stops are the order-preserved subset of
// segments flagged as stops.
func summarize(work []workingSegment) *domain.RoutePlan {
	segments := make([]domain.RouteSegment, 0, len(work))
	stops := make([]domain.ChargingStop, 0)

	totalKm := 0.0
	totalMin := 0.0
	for _, ws := range work {
		segments = append(segments, ws.seg)
		totalKm += ws.seg.DistanceKm
		totalMin += ws.seg.DurationMin + ws.seg.ChargingTimeMin

		if ws.seg.IsChargingStop {
			stops = append(stops, domain.ChargingStop{
				Location:        ws.seg.End,
				ChargingTimeMin: ws.seg.ChargingTimeMin,
				ChargeToPercent: ws.seg.ChargeToPercent,
			})
		}
	}

	return &domain.RoutePlan{
		Segments:         segments,
		TotalDistanceKm:  totalKm,
		TotalDurationMin: totalMin,
		ChargingStops:    stops,
	}
}
