package handlers

import (
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

type StationHandler struct {
	Directory ports.StationDirectory
	Logger    *slog.Logger
}

// List returns charging stations around a point, closest first.
// radius defaults to 10 km and is bounded to 0.1-50 km; connector
// optionally filters by connector type.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseFloatParam(q.Get("latitude"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "latitude is required and must be a number")
		return
	}
	lon, err := parseFloatParam(q.Get("longitude"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "longitude is required and must be a number")
		return
	}

	near := domain.Location{Lat: lat, Lon: lon}
	if !near.InBounds() {
		writeError(w, r, http.StatusBadRequest, "coordinates out of range")
		return
	}

	radius := 10.0
	if v := q.Get("radius"); v != "" {
		radius, err = parseFloatParam(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "radius must be a number")
			return
		}
	}
	if radius < 0.1 || radius > 50 {
		writeError(w, r, http.StatusBadRequest, "radius must be between 0.1 and 50 km")
		return
	}

	connector := strings.TrimSpace(q.Get("connector"))

	candidates, err := h.Directory.FindNearby(r.Context(), near, radius)
	if err != nil {
		h.Logger.Error("station lookup failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "charging station lookup failed")
		return
	}

	res := dto.ChargingStationResponse{Stations: make([]dto.ChargingStation, 0, len(candidates))}
	for _, c := range candidates {
		if connector != "" && !strings.EqualFold(c.Station.Connector, connector) {
			continue
		}
		res.Stations = append(res.Stations, dto.ChargingStation{
			ID:         c.Station.ID,
			Name:       c.Station.Name,
			Location:   fromLocation(c.Station.Location),
			Operator:   c.Station.Operator,
			Connector:  c.Station.Connector,
			PowerKW:    c.Station.PowerKW,
			Available:  c.Station.Available,
			DistanceKm: c.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func parseFloatParam(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}
