package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RouteCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ev_route", Name: "calculations_total", Help: "Route calculations by outcome"},
		[]string{"outcome"},
	)
	RouteCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{Namespace: "ev_route", Name: "calculation_duration_seconds", Help: "End-to-end route calculation latency"},
	)
	ChargingStopsInserted = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "ev_route", Name: "charging_stops_inserted_total", Help: "Charging stops inserted into planned routes"},
	)
	ExternalLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "ev_route", Name: "external_lookup_duration_seconds", Help: "Latency of upstream routing, station and geocode lookups"},
		[]string{"op"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ev_route", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ev_route",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
