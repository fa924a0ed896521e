package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"agroadvisor.app/api"
	"agroadvisor.app/config"
	"agroadvisor.app/locale"
	"agroadvisor.app/metrics"
	"agroadvisor.app/providers"
	"agroadvisor.app/providers/cache"
	"agroadvisor.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config     *config.Config
	server     *api.Server
	httpServer *http.Server
	memCache   *cache.MemoryCache
	redisCache *cache.RedisCache
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	snapshotCache, err := app.createSnapshotCache()
	if err != nil {
		return fmt.Errorf("create snapshot cache: %w", err)
	}

	cacheMetrics := metrics.NewCacheMetrics(app.config.Cache.Type)
	advisoryMetrics := metrics.NewAdvisoryMetrics()

	weatherProvider := providers.NewOpenWeatherProvider(&app.config.Weather, advisoryMetrics)
	modelProvider := providers.NewGroqProvider(&app.config.Model, advisoryMetrics)

	weatherService := service.NewWeatherService(
		weatherProvider,
		snapshotCache,
		time.Duration(app.config.Cache.TTLMinutes)*time.Minute,
		cacheMetrics,
	)

	defaultLang := locale.Parse(app.config.Advisor.DefaultLanguage, locale.Japanese)
	advisoryService := service.NewAdvisoryService(
		weatherService,
		modelProvider,
		service.NewPromptComposer(),
		advisoryMetrics,
		defaultLang,
		nil,
	)
	transcribeService := service.NewTranscribeService(modelProvider)

	app.server = api.NewServer(app.config, weatherService, advisoryService, transcribeService, cacheMetrics)

	slog.Info("Services initialized successfully")
	return nil
}

// createSnapshotCache builds the snapshot cache backend selected by
// configuration. Redis connectivity problems fail startup; a broken cache
// silently disabling itself would hide the misconfiguration.
func (app *Application) createSnapshotCache() (cache.SnapshotCacheInterface, error) {
	switch app.config.Cache.Type {
	case config.CacheTypeRedis:
		slog.Debug("Creating redis snapshot cache", "addr", app.config.Cache.RedisAddr)
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:     app.config.Cache.RedisAddr,
			Password: app.config.Cache.RedisPassword,
			DB:       app.config.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		app.redisCache = redisCache
		return cache.NewSnapshotCache(redisCache), nil
	default:
		slog.Debug("Creating in-memory snapshot cache")
		app.memCache = cache.NewMemoryCache()
		return cache.NewSnapshotCache(app.memCache), nil
	}
}

// Start runs the HTTP server until it fails or the context is canceled
func (app *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.server.GetRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		return nil
	}
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(ctx); err != nil {
			slog.Warn("Error shutting down HTTP server", "error", err)
		}
	}
	if app.memCache != nil {
		app.memCache.Stop()
	}
	if app.redisCache != nil {
		if err := app.redisCache.Close(); err != nil {
			slog.Warn("Error closing redis connection", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
