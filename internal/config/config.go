package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Stats feed
	FeedBaseURL string        `envconfig:"FEED_BASE_URL" default:"https://stats.nba.com/stats"`
	FeedTimeout time.Duration `envconfig:"FEED_TIMEOUT" default:"30s"`
	Season      string        `envconfig:"SEASON" default:"2024-25"`
	SeasonType  string        `envconfig:"SEASON_TYPE" default:"Regular Season"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"hoophub"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"hoophub"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`

	// Admin endpoints
	AdminToken string `envconfig:"ADMIN_TOKEN" default:""`

	// Ingestion
	// Games with no venue match either fail the whole batch ("strict") or
	// fall back to the default venue ("lenient").
	VenuePolicy string `envconfig:"VENUE_POLICY" default:"strict"`

	// Enrichment retry
	EnrichAttempts int           `envconfig:"ENRICH_ATTEMPTS" default:"3"`
	EnrichDelay    time.Duration `envconfig:"ENRICH_DELAY" default:"2s"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	DailyScoresCron string `envconfig:"DAILY_SCORES_CRON" default:"0 6 * * *"`
	DailyStatsCron  string `envconfig:"DAILY_STATS_CRON" default:"30 6 * * *"`
	Timezone        string `envconfig:"TIMEZONE" default:"America/New_York"`

	// Caching TTL (in seconds)
	CacheTTLStandings  int `envconfig:"CACHE_TTL_STANDINGS" default:"300"`  // 5 minutes
	CacheTTLScoreboard int `envconfig:"CACHE_TTL_SCOREBOARD" default:"120"` // 2 minutes
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.VenuePolicy != "strict" && c.VenuePolicy != "lenient" {
		return fmt.Errorf("VENUE_POLICY must be \"strict\" or \"lenient\", got %q", c.VenuePolicy)
	}

	if c.EnrichAttempts < 1 {
		return fmt.Errorf("ENRICH_ATTEMPTS must be at least 1")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Location returns the scheduling timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Timezone)
	return loc
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
