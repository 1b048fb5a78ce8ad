package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Runtime configuration, loaded once at startup from the environment.
// Planning parameters carry the documented defaults: 25 km station
// search radius, 10 percentage points of safety margin, 75 kWh battery
// and a 300 km full-charge range when the request does not supply one.
type Config struct {
	LogLevel        slog.Level
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	OSRMBaseURL      string
	NominatimBaseURL string

	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	StationRadiusKm float64
	SafetyMarginPct float64
	BatteryKWh      float64
	DefaultRangeKm  float64
	MaxWaypoints    int
}

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:     getDurationEnv("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		OSRMBaseURL:      getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		DBPath:      getEnv("DB_PATH", "data/ev.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    getEnv("SEED_PATH", "data/seeds/stations.json"),

		RedisEnabled:  getBoolEnv("REDIS_ENABLED", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RouteCacheTTL: getDurationEnv("ROUTE_CACHE_TTL", time.Hour),

		StationRadiusKm: getFloatEnv("STATION_RADIUS_KM", 25),
		SafetyMarginPct: getFloatEnv("SAFETY_MARGIN_PCT", 10),
		BatteryKWh:      getFloatEnv("BATTERY_KWH", 75),
		DefaultRangeKm:  getFloatEnv("DEFAULT_VEHICLE_RANGE_KM", 300),
		MaxWaypoints:    getIntEnv("MAX_WAYPOINTS", 25),
	}

	if cfg.StationRadiusKm <= 0 {
		return nil, fmt.Errorf("STATION_RADIUS_KM must be positive, got %v", cfg.StationRadiusKm)
	}
	if cfg.BatteryKWh <= 0 {
		return nil, fmt.Errorf("BATTERY_KWH must be positive, got %v", cfg.BatteryKWh)
	}
	if cfg.DefaultRangeKm <= 0 {
		return nil, fmt.Errorf("DEFAULT_VEHICLE_RANGE_KM must be positive, got %v", cfg.DefaultRangeKm)
	}
	if cfg.SafetyMarginPct < 0 || cfg.SafetyMarginPct > 100 {
		return nil, fmt.Errorf("SAFETY_MARGIN_PCT must be within 0-100, got %v", cfg.SafetyMarginPct)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getFloatEnv(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getLogLevelEnv(key string, defaultVal slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}

	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultVal
	}
}
