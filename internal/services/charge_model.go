package services

import (
	"ev-route-service/internal/domain"
	"fmt"
)

// Charging time model. An implementation answers how long the vehicle
// needs at a charger to move between two states of charge;
// implementations may model tapering near full charge.
type ChargeCurve interface {
	// Minutes to charge from fromPct to toPct on a charger
	// delivering powerKW.
	Minutes(v domain.Vehicle, fromPct, toPct, powerKW float64) float64
}

// Constant-rate charging model: energy needed over charger power.
type LinearCurve struct{}

func (LinearCurve) Minutes(v domain.Vehicle, fromPct, toPct, powerKW float64) float64 {
	if toPct <= fromPct || powerKW <= 0 {
		return 0
	}
	return v.EnergyForPercent(toPct-fromPct) / powerKW * 60
}

// Pass two: walk the segments tracking state of charge and fill in
// charge targets for the flagged stops. A target covers the full
// distance to the next charge opportunity (the following stop or the
// journey end) plus the safety margin, capped at 100 and never below
// the arrival level.
func planCharging(work []workingSegment, vehicle domain.Vehicle, curve ChargeCurve, marginPct float64) error {
	soc := 100.0
	for i := range work {
		ws := &work[i]

		soc -= vehicle.PercentForDistance(ws.seg.DistanceKm)
		if soc < 0 {
			soc = 0
		}
		if !ws.seg.IsChargingStop {
			continue
		}

		if ws.station.PowerKW <= 0 {
			return &domain.ExternalLookupError{
				Op:  "charging stop",
				Err: fmt.Errorf("station %s has no usable power rating", ws.station.ID),
			}
		}

		runKm, runEnd := runToNextStop(work, i+1)
		bare := vehicle.PercentForDistance(runKm)
		if bare > 100+distEpsilonKm {
			return &domain.InfeasibleRouteError{
				LegStart:   ws.seg.End,
				LegEnd:     runEnd,
				DistanceKm: runKm,
				Near:       ws.seg.End,
				Reason:     "next charge opportunity beyond full-charge range",
			}
		}

		target := bare + marginPct
		if target > 100 {
			target = 100
		}
		if target < soc {
			target = soc
		}

		ws.seg.ChargeToPercent = target
		ws.seg.ChargingTimeMin = curve.Minutes(vehicle, soc, target, ws.station.PowerKW)
		soc = target
	}
	return nil
}

// Distance from the given index through the next charging stop, or to
// the journey end, with the location where that run finishes.
func runToNextStop(work []workingSegment, from int) (float64, domain.Location) {
	if from >= len(work) {
		return 0, work[len(work)-1].seg.End
	}

	run := 0.0
	end := work[from].seg.End
	for i := from; i < len(work); i++ {
		run += work[i].seg.DistanceKm
		end = work[i].seg.End
		if work[i].seg.IsChargingStop {
			break
		}
	}
	return run, end
}
