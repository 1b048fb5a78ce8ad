package api

import (
	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	provider ports.RouteProvider,
	directory ports.StationDirectory,
	geocoder ports.Geocoder,
	opts services.PlanningOptions,
	defaultRangeKm float64,
	logger *slog.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(recoverMiddleware(logger))
	r.Use(requestIDMiddleware)
	r.Use(observabilityMiddleware(logger))

	routeHandler := &handlers.RouteHandler{
		Provider:       provider,
		Stations:       directory,
		Options:        opts,
		DefaultRangeKm: defaultRangeKm,
		Logger:         logger.With("component", "routes"),
	}
	stationHandler := &handlers.StationHandler{
		Directory: directory,
		Logger:    logger.With("component", "stations"),
	}
	geocodeHandler := &handlers.GeocodeHandler{
		Geocoder: geocoder,
		Logger:   logger.With("component", "geocode"),
	}

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/routes/calculate", routeHandler.Calculate).Methods(http.MethodPost)
	v1.HandleFunc("/charging-stations", stationHandler.List).Methods(http.MethodGet)
	v1.HandleFunc("/geocode", geocodeHandler.Lookup).Methods(http.MethodGet)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
