package dto

// Wire shapes follow the public API: snake_case keys, kilometers for
// distances, minutes for durations, percent for charge levels.

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type RouteRequest struct {
	Start        *Location  `json:"start"`
	Destination  *Location  `json:"destination"`
	Waypoints    []Location `json:"waypoints"`
	VehicleRange *float64   `json:"vehicle_range"`
}

type RouteSegment struct {
	StartLocation  Location `json:"start_location"`
	EndLocation    Location `json:"end_location"`
	Distance       float64  `json:"distance"`
	Duration       float64  `json:"duration"`
	IsChargingStop bool     `json:"is_charging_stop"`
	ChargingTime   *float64 `json:"charging_time,omitempty"`
	ChargeToLevel  *float64 `json:"charge_to_level,omitempty"`
	Polyline       string   `json:"polyline,omitempty"`
}

type ChargingStop struct {
	Location      Location `json:"location"`
	ChargingTime  float64  `json:"charging_time"`
	ChargeToLevel float64  `json:"charge_to_level"`
}

type RouteResponse struct {
	RouteSegments []RouteSegment `json:"route_segments"`
	TotalDistance float64        `json:"total_distance"`
	TotalDuration float64        `json:"total_duration"`
	ChargingStops []ChargingStop `json:"charging_stops"`
}
