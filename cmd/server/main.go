package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/cache"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/config"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/gateway"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/handler"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/providers"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/ranking"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/ratelimit"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/search"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/store"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.Logging)
	logger := slog.Default().With("component", "server")

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	m := metrics.New(prometheus.DefaultRegisterer)

	cashSources := []providers.Source{
		providers.NewDuffelSource(cfg.Sources.DuffelAPIKey),
		providers.NewAmadeusSource(cfg.Sources.AmadeusAPIKey, cfg.Sources.AmadeusAPISecret),
		providers.NewKiwiSource(cfg.Sources.KiwiAPIKey),
	}
	milesSources := []providers.Source{
		providers.NewSmilesSource(cfg.Sources.ScrapingEnabled),
		providers.NewLatamPassSource(cfg.Sources.ScrapingEnabled),
		providers.NewTudoAzulSource(cfg.Sources.ScrapingEnabled),
	}
	logger.Info("sources configured",
		"cash", availableCount(cashSources),
		"miles", availableCount(milesSources),
	)

	limiter := ratelimit.NewSourceLimiterWithDefaults()
	limiter.SetSourceLimit("duffel", 20, 30)
	limiter.SetSourceLimit("amadeus", 20, 30)
	limiter.SetSourceLimit("kiwi", 15, 25)
	// Loyalty-program sources are throttled hard: they sit behind automation
	// that tolerates very little traffic.
	limiter.SetSourceLimit("smiles", 5, 5)
	limiter.SetSourceLimit("latam_pass", 5, 5)
	limiter.SetSourceLimit("tudoazul", 5, 5)

	gwConfig := gateway.Config{
		SourceTimeout: cfg.Sources.SourceTimeout,
		MaxRetries:    cfg.Sources.MaxRetries,
		RetryDelays:   gatewayRetryDelays(),
		RateLimiter:   limiter,
		Metrics:       m,
	}
	cashGW := gateway.New("cash", cashSources, gwConfig)
	milesGW := gateway.New("miles", milesSources, gwConfig)

	var backing cache.Store
	if cfg.Cache.Enabled {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.Cache.Host,
			Port:     cfg.Cache.Port,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		backing = redisStore
		logger.Info("redis cache enabled", "addr", cfg.Cache.Host+":"+cfg.Cache.Port, "ttl", cfg.Cache.TTL, "fresh_for", cfg.Cache.FreshFor)
	} else {
		backing = cache.NewNoOpStore()
		logger.Info("cache disabled")
	}
	offerCache := cache.New(backing, cfg.Cache.TTL, cfg.Cache.FreshFor)

	var offerStore store.OfferStore
	if cfg.Postgres.Enabled {
		pgStore, err := store.NewPostgresStore(context.Background(), cfg.Postgres.DSN())
		if err != nil {
			logger.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		offerStore = pgStore
		logger.Info("offer persistence enabled", "host", cfg.Postgres.Host, "db", cfg.Postgres.DBName)
	} else {
		offerStore = store.NewDisabledStore()
		logger.Info("offer persistence disabled")
	}

	engine := ranking.NewEngine(ranking.Config{
		Weights: ranking.Weights{
			Price:     cfg.Pricing.PriceWeight,
			Duration:  cfg.Pricing.DurationWeight,
			Stops:     cfg.Pricing.StopsWeight,
			Ancillary: cfg.Pricing.AncillaryWeight,
		},
		RatePerPoint: cfg.Pricing.RatePerPoint,
	})

	service := search.NewService(offerCache, cashGW, milesGW, engine, offerStore, m)
	searchHandler := handler.NewSearchHandler(service)

	api := e.Group("/api/v1")
	api.POST("/flights/search", searchHandler.Search)
	api.POST("/flights/compare", searchHandler.Compare)
	api.GET("/offers/:hash", searchHandler.GetOffer)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	logger.Info("starting offer engine", "port", cfg.Server.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func availableCount(sources []providers.Source) int {
	n := 0
	for _, s := range sources {
		if s.IsAvailable() {
			n++
		}
	}
	return n
}

func gatewayRetryDelays() []time.Duration {
	return []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
	}
}
