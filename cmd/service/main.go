// Command service runs the partnerdesk API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/partnerdesk/internal/bootstrap"
	"github.com/dropDatabas3/partnerdesk/internal/cache"
	memcache "github.com/dropDatabas3/partnerdesk/internal/cache/memory"
	redcache "github.com/dropDatabas3/partnerdesk/internal/cache/redis"
	"github.com/dropDatabas3/partnerdesk/internal/config"
	httpapi "github.com/dropDatabas3/partnerdesk/internal/http"
	adminctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/admin"
	authctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/auth"
	healthctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/health"
	postsctl "github.com/dropDatabas3/partnerdesk/internal/http/controllers/posts"
	adminsvc "github.com/dropDatabas3/partnerdesk/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/partnerdesk/internal/http/services/auth"
	postssvc "github.com/dropDatabas3/partnerdesk/internal/http/services/posts"
	"github.com/dropDatabas3/partnerdesk/internal/metrics"
	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
	"github.com/dropDatabas3/partnerdesk/internal/rate"
	"github.com/dropDatabas3/partnerdesk/internal/store"
	"github.com/dropDatabas3/partnerdesk/internal/store/pg"
	"github.com/dropDatabas3/partnerdesk/internal/token"
	pgmigrations "github.com/dropDatabas3/partnerdesk/migrations/postgres"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "service:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	flag.Parse()

	// Local dev convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "partnerdesk",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if err := metrics.Register(nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if pgStore, ok := st.(*pg.Store); ok {
		mig := store.NewMigrator(pgmigrations.FS, pgmigrations.Dir)
		res, err := mig.Run(ctx, pgStore.Pool())
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied",
			logger.Int("applied", len(res.Applied)),
			logger.Int("skipped", len(res.Skipped)),
		)
	}

	if err := bootstrap.EnsureAdmin(ctx, st.Users(), cfg); err != nil {
		return err
	}

	tokens, err := token.New(
		[]byte(cfg.JWT.AccessSecret),
		[]byte(cfg.JWT.RefreshSecret),
		token.WithTTLs(cfg.AccessTTL(), cfg.RefreshTTL()),
	)
	if err != nil {
		return err
	}

	var loginLimiter rate.Limiter
	if cfg.Rate.Enabled {
		var counter cache.Client
		switch cfg.Cache.Kind {
		case "redis":
			prefix := cfg.Cache.Redis.Prefix
			if prefix == "" {
				prefix = "pd:"
			}
			counter = redcache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, prefix)
		default:
			counter = memcache.New(cfg.LoginRateWindow())
		}
		loginLimiter = rate.NewFixedWindow(counter, "login:", cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		log.Info("login rate limiting enabled",
			logger.Int("limit", cfg.Rate.Login.Limit),
			logger.String("window", cfg.Rate.Login.Window),
		)
	}

	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Users: st.Users(), Tokens: tokens})
	refreshSvc := authsvc.NewRefreshService(authsvc.RefreshDeps{Users: st.Users(), Tokens: tokens})
	postsSvc := postssvc.NewService(st.Posts())
	usersSvc := adminsvc.NewUsersService(st.Users())

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:         authctl.NewControllers(loginSvc, refreshSvc),
		Posts:        postsctl.NewController(postsSvc),
		Admin:        adminctl.NewUsersController(usersSvc),
		Health:       healthctl.NewController(st, version),
		Tokens:       tokens,
		Users:        st.Users(),
		LoginLimiter: loginLimiter,
	})

	srv := httpapi.NewServer(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("service stopped")
	return nil
}
