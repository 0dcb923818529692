// Package config loads application configuration from environment variables
// and an optional .env file. A Config value is passed explicitly into every
// constructor; there is no ambient global state.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Cache    CacheConfig
	Postgres PostgresConfig
	Pricing  PricingConfig
	Sources  SourcesConfig
	Search   SearchConfig
}

type ServerConfig struct {
	Port int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type CacheConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// TTL is how long an entry survives in storage; FreshFor is how long it
	// substitutes for a live fetch. FreshFor must not exceed TTL.
	TTL      time.Duration
	FreshFor time.Duration
}

type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

type PricingConfig struct {
	RatePerPoint    float64
	PriceWeight     float64
	DurationWeight  float64
	StopsWeight     float64
	AncillaryWeight float64
}

type SourcesConfig struct {
	DuffelAPIKey     string
	AmadeusAPIKey    string
	AmadeusAPISecret string
	KiwiAPIKey       string
	ScrapingEnabled  bool
	SourceTimeout    time.Duration
	MaxRetries       int
}

type SearchConfig struct {
	DefaultLimit int
}

// Load reads configuration from the environment with a .env fallback.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8080)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "30m")
	viper.SetDefault("CACHE_FRESH_FOR", "30m")

	viper.SetDefault("POSTGRES_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "travel_user")
	viper.SetDefault("POSTGRES_PASSWORD", "travel_password_123")
	viper.SetDefault("POSTGRES_DB", "travel_agent")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("RATE_PER_POINT", 0.03)
	viper.SetDefault("PRICE_WEIGHT", 0.4)
	viper.SetDefault("DURATION_WEIGHT", 0.3)
	viper.SetDefault("STOPS_WEIGHT", 0.2)
	viper.SetDefault("ANCILLARY_WEIGHT", 0.1)

	viper.SetDefault("DUFFEL_API_KEY", "")
	viper.SetDefault("AMADEUS_API_KEY", "")
	viper.SetDefault("AMADEUS_API_SECRET", "")
	viper.SetDefault("KIWI_API_KEY", "")
	viper.SetDefault("SCRAPING_ENABLED", true)
	viper.SetDefault("SOURCE_TIMEOUT", "2s")
	viper.SetDefault("SOURCE_MAX_RETRIES", 2)

	viper.SetDefault("SEARCH_DEFAULT_LIMIT", 5)

	// Missing .env is fine; plain env vars are used instead.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("PORT"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Cache: CacheConfig{
			Enabled:  viper.GetBool("CACHE_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("CACHE_TTL"),
			FreshFor: viper.GetDuration("CACHE_FRESH_FOR"),
		},
		Postgres: PostgresConfig{
			Enabled:  viper.GetBool("POSTGRES_ENABLED"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Pricing: PricingConfig{
			RatePerPoint:    viper.GetFloat64("RATE_PER_POINT"),
			PriceWeight:     viper.GetFloat64("PRICE_WEIGHT"),
			DurationWeight:  viper.GetFloat64("DURATION_WEIGHT"),
			StopsWeight:     viper.GetFloat64("STOPS_WEIGHT"),
			AncillaryWeight: viper.GetFloat64("ANCILLARY_WEIGHT"),
		},
		Sources: SourcesConfig{
			DuffelAPIKey:     viper.GetString("DUFFEL_API_KEY"),
			AmadeusAPIKey:    viper.GetString("AMADEUS_API_KEY"),
			AmadeusAPISecret: viper.GetString("AMADEUS_API_SECRET"),
			KiwiAPIKey:       viper.GetString("KIWI_API_KEY"),
			ScrapingEnabled:  viper.GetBool("SCRAPING_ENABLED"),
			SourceTimeout:    viper.GetDuration("SOURCE_TIMEOUT"),
			MaxRetries:       viper.GetInt("SOURCE_MAX_RETRIES"),
		},
		Search: SearchConfig{
			DefaultLimit: viper.GetInt("SEARCH_DEFAULT_LIMIT"),
		},
	}

	if cfg.Cache.FreshFor > cfg.Cache.TTL {
		return nil, fmt.Errorf("config: CACHE_FRESH_FOR (%v) must not exceed CACHE_TTL (%v)", cfg.Cache.FreshFor, cfg.Cache.TTL)
	}

	return cfg, nil
}
