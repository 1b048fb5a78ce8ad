package handlers

import (
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/ports"
	"log/slog"
	"net/http"
	"strings"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Logger   *slog.Logger
}

// Lookup resolves a city name to coordinates.
func (h *GeocodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	loc, err := h.Geocoder.Geocode(r.Context(), city)
	if err != nil {
		h.Logger.Warn("geocode failed", "city", city, "error", err)
		writeError(w, r, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.Location{
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
		Name:      loc.Name,
		Address:   loc.Address,
	})
}
