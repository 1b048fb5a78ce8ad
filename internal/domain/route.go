package domain

// Validated planning input handed to the route calculator.
// Waypoints are visited in the given order between Start and Destination.
// VehicleRangeKm is the driving range on a full charge.
type RouteRequest struct {
	Start          Location
	Destination    Location
	Waypoints      []Location
	VehicleRangeKm float64
}

// One travel increment of a planned journey. A segment either connects
// two route points directly, or ends at a charging station, in which
// case IsChargingStop is set and ChargingTimeMin / ChargeToPercent
// carry the planned stop parameters. DurationMin is driving time only.
// Geometry is an encoded polyline of the segment path and may be empty.
type RouteSegment struct {
	Start           Location
	End             Location
	DistanceKm      float64
	DurationMin     float64
	IsChargingStop  bool
	ChargingTimeMin float64
	ChargeToPercent float64
	Geometry        string
}

// Read-only projection of one charging stop, in travel order.
type ChargingStop struct {
	Location        Location
	ChargingTimeMin float64
	ChargeToPercent float64
}

// Represents the planned journey for a single request.
// A RoutePlan is the output of the route calculator and describes the
// ordered travel segments along with aggregate distance and duration.
// Totals are recomputable sums over the segments: TotalDurationMin
// includes both driving and charging time. It is immutable planning
// data and contains no side effects.
type RoutePlan struct {
	Segments         []RouteSegment
	TotalDistanceKm  float64
	TotalDurationMin float64
	ChargingStops    []ChargingStop
}
