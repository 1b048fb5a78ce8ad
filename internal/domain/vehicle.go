package domain

import "fmt"

// Vehicle energy model for a single planning request: full-charge
// driving range and usable battery capacity. Constructed once per
// request and immutable during planning.
type Vehicle struct {
	RangeKm    float64
	BatteryKWh float64
}

func NewVehicle(rangeKm, batteryKWh float64) (Vehicle, error) {
	if rangeKm <= 0 {
		return Vehicle{}, fmt.Errorf("new vehicle: range must be positive, got %.1f", rangeKm)
	}
	if batteryKWh <= 0 {
		return Vehicle{}, fmt.Errorf("new vehicle: battery capacity must be positive, got %.1f", batteryKWh)
	}
	return Vehicle{RangeKm: rangeKm, BatteryKWh: batteryKWh}, nil
}

// State of charge, in percent, consumed by driving the given distance.
func (v Vehicle) PercentForDistance(km float64) float64 {
	return km / v.RangeKm * 100
}

// Battery energy, in kWh, behind a state-of-charge delta in percent.
func (v Vehicle) EnergyForPercent(deltaPct float64) float64 {
	return deltaPct / 100 * v.BatteryKWh
}
