// Package store selects and wires a storage driver behind the domain
// repository interfaces.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/partnerdesk/internal/config"
	"github.com/dropDatabas3/partnerdesk/internal/domain/repository"
	"github.com/dropDatabas3/partnerdesk/internal/store/memory"
	"github.com/dropDatabas3/partnerdesk/internal/store/pg"
)

// Store is the driver-agnostic view the services consume.
type Store interface {
	Users() repository.UserRepository
	Posts() repository.PostRepository
	Ping(ctx context.Context) error
	Close()
}

// Open builds a Store for the configured driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.New(), nil
	case "postgres":
		var lifetime time.Duration
		if s := cfg.Storage.Postgres.ConnMaxLifetime; s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("store: conn_max_lifetime: %w", err)
			}
			lifetime = d
		}
		return pg.Connect(ctx, pg.Config{
			DSN:             cfg.Storage.DSN,
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: lifetime,
		})
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Storage.Driver)
	}
}
