package main

import (
	"context"
	"database/sql"
	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/geocoding"
	"ev-route-service/internal/adapters/routing"
	"ev-route-service/internal/adapters/stations"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, OSRM, Nominatim, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ev route server",
		"http_addr", cfg.HTTPAddr,
		"osrm", cfg.OSRMBaseURL,
		"redis_enabled", cfg.RedisEnabled,
	)

	sqlDB, usingPostgres, err := openStationDB(cfg)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
	}

	directory := pickDirectory(cfg, sqlDB, usingPostgres, redisClient, logger)

	var provider ports.RouteProvider
	osrm, err := routing.NewOSRMRouteProvider(cfg.OSRMBaseURL)
	if err != nil {
		logger.Error("osrm setup failed", "error", err)
		os.Exit(1)
	}
	provider = osrm
	if redisClient != nil {
		provider = routing.NewCachedRouteProvider(osrm, redisClient, cfg.RouteCacheTTL, logger)
	}

	var geocodeCache geocoding.Cache
	if usingPostgres {
		geocodeCache = cache.NewSQLGeocodeCache(sqlDB)
	} else {
		geocodeCache = cache.NewSqliteGeocodeCache(sqlDB)
	}
	geocoder, err := geocoding.NewNominatimGeocoder(cfg.NominatimBaseURL, geocodeCache, logger)
	if err != nil {
		logger.Error("geocoder setup failed", "error", err)
		os.Exit(1)
	}

	opts := services.PlanningOptions{
		StationRadiusKm: cfg.StationRadiusKm,
		SafetyMarginPct: cfg.SafetyMarginPct,
		BatteryKWh:      cfg.BatteryKWh,
		MaxWaypoints:    cfg.MaxWaypoints,
	}
	router := api.NewRouter(provider, directory, geocoder, opts, cfg.DefaultRangeKm, logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// openStationDB opens Postgres when DATABASE_URL is set, otherwise the
// local SQLite file. SQLite runs get schema init and seeding on startup;
// Postgres schemas are managed by cmd/dbtool.
func openStationDB(cfg *config.Config) (*sql.DB, bool, error) {
	if cfg.DatabaseURL != "" {
		pg, err := db.OpenPostgres(cfg.DatabaseURL)
		return pg, true, err
	}

	lite, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, false, err
	}
	if err := stations.InitSchema(lite); err != nil {
		lite.Close()
		return nil, false, err
	}
	if err := stations.SeedFromJSON(lite, cfg.SeedPath); err != nil {
		lite.Close()
		return nil, false, err
	}
	return lite, false, nil
}

// pickDirectory prefers the Redis GEO index when Redis is enabled; the
// SQL directory is the fallback and the source of truth either way.
func pickDirectory(cfg *config.Config, sqlDB *sql.DB, usingPostgres bool, redisClient *redis.Client, logger *slog.Logger) ports.StationDirectory {
	if redisClient != nil {
		logger.Info("using redis GEO station directory", "addr", cfg.RedisAddr)
		return stations.NewRedisStationDirectory(redisClient)
	}
	if usingPostgres {
		return stations.NewPostgresStationDirectory(sqlDB)
	}
	return stations.NewSqliteStationDirectory(sqlDB)
}
