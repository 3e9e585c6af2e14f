package app

import (
	"context"
	"time"

	"github.com/campushot/server/internal/cache"
	"github.com/campushot/server/internal/config"
	"github.com/campushot/server/internal/database"
	"github.com/campushot/server/internal/engagement"
	"github.com/campushot/server/internal/httpapi"
	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/trending"
)

// App holds all application dependencies
type App struct {
	Config        *config.Config
	Logger        *logging.Logger
	Cache         cache.Cache
	EngagementSvc *engagement.Service
	TrendingSvc   *trending.Service
	HTTPServer    *httpapi.Server

	mongo *database.Mongo
}

// New creates and initializes a new App instance
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.Logger = logging.New(logging.ParseLevel(cfg.Logging.Level))
	app.Cache = app.initCache()

	mongo, err := database.New(database.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, err
	}
	app.mongo = mongo

	counterStore := database.NewCounterStore(mongo, app.Logger)
	eventStore := database.NewEventStore(mongo, app.Logger)
	noticeStore := database.NewNoticeStore(mongo, app.Logger)

	app.EngagementSvc = engagement.NewService(counterStore, app.Logger)
	app.TrendingSvc = trending.NewService(eventStore, noticeStore, counterStore, app.Cache, app.Logger)

	app.HTTPServer = httpapi.New(app.EngagementSvc, app.TrendingSvc, cfg.Trending, app.Logger)

	return app, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.HTTPServer.Start(a.Config.Server.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.HTTPServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases held resources
func (a *App) Close() {
	if a.mongo != nil {
		if err := a.mongo.Close(); err != nil {
			a.Logger.Warn("Failed to close MongoDB connection", logging.WithField("error", err.Error()))
		}
	}
}

func (a *App) initCache() cache.Cache {
	switch a.Config.Cache.Backend {
	case "redis":
		a.Logger.Info("Using Redis cache backend", logging.WithField("addr", a.Config.Cache.RedisAddr))
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addr: a.Config.Cache.RedisAddr,
		}, a.Config.Cache.TTL)
		if err != nil {
			a.Logger.Error("Failed to connect to Redis, falling back to memory cache", logging.WithField("error", err.Error()))
			return cache.NewMemory(a.Config.Cache.TTL)
		}
		return redisCache
	default:
		a.Logger.Info("Using in-memory cache backend")
		return cache.NewMemory(a.Config.Cache.TTL)
	}
}
