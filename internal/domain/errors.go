package domain

import "fmt"

// Reported when a journey cannot be completed within vehicle range:
// a leg ran the battery down with no charging station in reach of the
// furthest reachable point. The route engine translates this to a
// 422 response.
type InfeasibleRouteError struct {
	LegStart   Location
	LegEnd     Location
	DistanceKm float64
	Near       Location
	Reason     string
}

func (e *InfeasibleRouteError) Error() string {
	return fmt.Sprintf("infeasible route: leg %s -> %s (%.1f km): %s near %s",
		e.LegStart.Label(), e.LegEnd.Label(), e.DistanceKm, e.Reason, e.Near.Label())
}

// Reported when an upstream dependency (routing engine, station
// directory, geocoder) fails or times out. Wraps the underlying error.
type ExternalLookupError struct {
	Op  string
	Err error
}

func (e *ExternalLookupError) Error() string {
	return fmt.Sprintf("external lookup: %s: %v", e.Op, e.Err)
}

func (e *ExternalLookupError) Unwrap() error { return e.Err }

// Reported when a request is rejected by validation before any
// planning work or external call is made.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
