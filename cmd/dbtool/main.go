package main

import (
	"context"
	"database/sql"
	"ev-route-service/internal/adapters/stations"
	"ev-route-service/internal/config"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/db"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// dbtool initializes the Postgres schema and seeds the charging
// station data; -warm-redis additionally loads every station into the
// Redis GEO index for servers configured with REDIS_ENABLED.
func main() {
	warmRedis := flag.Bool("warm-redis", false, "load all stations into the Redis GEO index after seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	if err := initAndSeed(pg, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	if *warmRedis {
		if err := warm(pg, cfg); err != nil {
			log.Fatal(err)
		}
	}
}

func initAndSeed(pg *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := stations.InitSchemaPostgres(pg); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding charging stations...")
	if err := stations.SeedFromJSONPostgres(pg, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}

func warm(pg *sql.DB, cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	list, err := listStations(pg)
	if err != nil {
		return err
	}

	log.Printf("Warming Redis GEO index with %d stations...", len(list))
	dir := stations.NewRedisStationDirectory(client)
	if err := dir.Warm(context.Background(), list); err != nil {
		return fmt.Errorf("redis warm failed: %w", err)
	}
	log.Println("Warm complete.")

	return nil
}

func listStations(pg *sql.DB) ([]domain.ChargingStation, error) {
	rows, err := pg.Query(`
	SELECT id, name, lat, lon, operator, connector, power_kw, available
	FROM charging_stations
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ChargingStation, 0, 64)
	for rows.Next() {
		var st domain.ChargingStation
		var lat, lon float64
		if err := rows.Scan(&st.ID, &st.Name, &lat, &lon, &st.Operator, &st.Connector, &st.PowerKW, &st.Available); err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		st.Location = domain.Location{Lat: lat, Lon: lon, Name: st.Name}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return out, nil
}
