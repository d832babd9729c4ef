package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/migrations"
	"blog-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}
	logger.Init(os.Getenv("APP_ENV"))

	direction := flag.String("direction", "up", "up or down")
	steps := flag.Int("steps", 1, "number of migrations to revert when direction=down")
	flag.Parse()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}

	db, err := sql.Open("postgres", dbConfig.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}

	m, err := migrations.New(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init migrator")
	}

	switch *direction {
	case "up":
		if err := migrations.Up(m); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	case "down":
		if err := migrations.Down(m, *steps); err != nil {
			log.Fatal().Err(err).Int("steps", *steps).Msg("rollback failed")
		}
	default:
		log.Fatal().Str("direction", *direction).Msg("direction must be up or down")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("failed to read schema version")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migrations complete")
}
