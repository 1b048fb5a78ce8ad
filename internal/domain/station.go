package domain

// Represents a public charging station served by a station directory.
// PowerKW is the output of the station's best connector; the planner
// prefers higher power when two candidate stations are equally near.
type ChargingStation struct {
	ID        string
	Name      string
	Location  Location
	Operator  string
	Connector string
	PowerKW   float64
	Available bool
}
