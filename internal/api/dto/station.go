package dto

type ChargingStation struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   Location `json:"location"`
	Operator   string   `json:"operator,omitempty"`
	Connector  string   `json:"connector,omitempty"`
	PowerKW    float64  `json:"power_kw"`
	Available  bool     `json:"available"`
	DistanceKm float64  `json:"distance_km"`
}

type ChargingStationResponse struct {
	Stations []ChargingStation `json:"stations"`
}
