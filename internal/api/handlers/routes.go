package handlers

import (
	"encoding/json"
	"errors"
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type RouteHandler struct {
	Provider       ports.RouteProvider
	Stations       ports.StationDirectory
	Options        services.PlanningOptions
	DefaultRangeKm float64
	Logger         *slog.Logger
}

// Calculate plans a charging-aware itinerary for the posted request.
// Validation errors map to 400, infeasible routes to 422 and upstream
// lookup failures to 502; the response body is all-or-nothing.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Start == nil {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}
	if req.Destination == nil {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	vehicleRange := h.DefaultRangeKm
	if req.VehicleRange != nil {
		vehicleRange = *req.VehicleRange
	}

	waypoints := make([]domain.Location, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		waypoints = append(waypoints, toLocation(wp))
	}

	svcReq := domain.RouteRequest{
		Start:          toLocation(*req.Start),
		Destination:    toLocation(*req.Destination),
		Waypoints:      waypoints,
		VehicleRangeKm: vehicleRange,
	}

	start := time.Now()
	plan, err := services.CalculateRoute(r.Context(), svcReq, h.Provider, h.Stations, h.Options)
	obs.RouteCalculationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		status, outcome := classify(err)
		obs.RouteCalculationsTotal.WithLabelValues(outcome).Inc()

		if status == http.StatusInternalServerError {
			h.Logger.Error("route calculation failed", "error", err)
			writeError(w, r, status, "internal server error")
			return
		}
		h.Logger.Info("route calculation rejected", "outcome", outcome, "error", err)
		writeError(w, r, status, err.Error())
		return
	}

	obs.RouteCalculationsTotal.WithLabelValues("ok").Inc()
	obs.ChargingStopsInserted.Add(float64(len(plan.ChargingStops)))

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
}

func classify(err error) (status int, outcome string) {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, "invalid_input"
	}
	var infeasible *domain.InfeasibleRouteError
	if errors.As(err, &infeasible) {
		return http.StatusUnprocessableEntity, "infeasible"
	}
	var lookup *domain.ExternalLookupError
	if errors.As(err, &lookup) {
		return http.StatusBadGateway, "lookup_failed"
	}
	return http.StatusInternalServerError, "error"
}

func toLocation(l dto.Location) domain.Location {
	return domain.Location{Lat: l.Latitude, Lon: l.Longitude, Name: l.Name, Address: l.Address}
}

func fromLocation(l domain.Location) dto.Location {
	return dto.Location{Latitude: l.Lat, Longitude: l.Lon, Name: l.Name, Address: l.Address}
}

func toRouteResponse(plan *domain.RoutePlan) dto.RouteResponse {
	segments := make([]dto.RouteSegment, 0, len(plan.Segments))
	for _, s := range plan.Segments {
		seg := dto.RouteSegment{
			StartLocation:  fromLocation(s.Start),
			EndLocation:    fromLocation(s.End),
			Distance:       s.DistanceKm,
			Duration:       s.DurationMin,
			IsChargingStop: s.IsChargingStop,
			Polyline:       s.Geometry,
		}
		if s.IsChargingStop {
			chargingTime := s.ChargingTimeMin
			chargeTo := s.ChargeToPercent
			seg.ChargingTime = &chargingTime
			seg.ChargeToLevel = &chargeTo
		}
		segments = append(segments, seg)
	}

	stops := make([]dto.ChargingStop, 0, len(plan.ChargingStops))
	for _, s := range plan.ChargingStops {
		stops = append(stops, dto.ChargingStop{
			Location:      fromLocation(s.Location),
			ChargingTime:  s.ChargingTimeMin,
			ChargeToLevel: s.ChargeToPercent,
		})
	}

	return dto.RouteResponse{
		RouteSegments: segments,
		TotalDistance: plan.TotalDistanceKm,
		TotalDuration: plan.TotalDurationMin,
		ChargingStops: stops,
	}
}
