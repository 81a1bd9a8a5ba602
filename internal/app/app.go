package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/buckets/internal/config"
	"github.com/MrSnakeDoc/buckets/internal/httpserver"
	"github.com/MrSnakeDoc/buckets/internal/httpserver/deps"
	"github.com/MrSnakeDoc/buckets/internal/logger"
	"github.com/MrSnakeDoc/buckets/internal/redis"
	"github.com/MrSnakeDoc/buckets/internal/store"
	redisstore "github.com/MrSnakeDoc/buckets/internal/store/redis"
	"github.com/MrSnakeDoc/buckets/internal/version"
	"github.com/MrSnakeDoc/buckets/internal/view"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	store       *store.Store
	server      *httpserver.Server
	redisClient *goredis.Client
}

// OpenStore opens the database described by cfg.
func OpenStore(cfg *config.Config, log logger.Logger) (*store.Store, error) {
	return store.Open(store.Options{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		SlowThreshold:   cfg.DBSlowThreshold,
	}, log)
}

// New opens the database, connects Redis when configured and builds the
// HTTP server. Everything opened is closed again on error.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	st, err := OpenStore(cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		loggerClient.Info("database schema migrated")
	}

	renderer, err := view.New()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.OpsAllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Store:        st,
		Renderer:     renderer,
	}

	var redisClient *goredis.Client
	if cfg.RedisEnabled() {
		redisClient, err = redis.New(ctx, redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		d.RedisClient = redisClient
		d.NavCache = redisstore.NewStore(redisClient, cfg.NavCacheTTL)
		loggerClient.Info("bucket navigation cache enabled", logger.Duration("ttl", cfg.NavCacheTTL))
	} else {
		loggerClient.Info("redis not configured, navigation cache disabled")
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		store:       st,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run() error {
	a.logger.Info("starting buckets",
		logger.String("version", version.Version),
		logger.String("listen", a.cfg.ListenPort),
		logger.String("dialect", string(a.store.Dialect())))
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			runErr = fmt.Errorf("failed to stop server: %w", err)
		}
	case err := <-errCh:
		runErr = err
	}

	a.close()
	if runErr == nil {
		a.logger.Info("buckets stopped cleanly")
	}
	return runErr
}

func (a *App) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", logger.Error(err))
		} else {
			a.logger.Info("redis closed cleanly")
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close database", logger.Error(err))
	} else {
		a.logger.Info("database closed cleanly")
	}
}
