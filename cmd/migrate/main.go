// Command migrate applies the embedded SQL migrations to the configured
// Postgres database.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/dropDatabas3/partnerdesk/internal/config"
	"github.com/dropDatabas3/partnerdesk/internal/store"
	pgmigrations "github.com/dropDatabas3/partnerdesk/migrations/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("migrate: storage driver is %q, nothing to migrate", cfg.Storage.Driver)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	mig := store.NewMigrator(pgmigrations.FS, pgmigrations.Dir)
	res, err := mig.Run(ctx, pool)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrations done: %d applied, %d already present (%s)",
		len(res.Applied), len(res.Skipped), res.Duration)
}
