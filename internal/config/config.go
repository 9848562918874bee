package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by STORE_BACKEND
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

// DatabaseConfig holds relational database settings
type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	SQLitePath string
}

// DSN returns the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// StoreConfig selects and configures the remote sighting store
type StoreConfig struct {
	Backend string
	URL     string
	APIKey  string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
}

func (c *MQTTConfig) Enabled() bool {
	return c.Broker != ""
}

type StatsConfig struct {
	CacheTTL    time.Duration
	RefreshCron string
}

type SubmitConfig struct {
	RatePerSecond float64
	Burst         int
}

// Config is the full service configuration
type Config struct {
	AppEnv   string
	HTTPPort string
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MQTT     MQTTConfig
	Stats    StatsConfig
	Submit   SubmitConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendSQLite),
			URL:     os.Getenv("STORE_URL"),
			APIKey:  os.Getenv("STORE_API_KEY"),
		},
		Database: DatabaseConfig{
			Host:       getEnv("PG_HOST", "localhost"),
			User:       getEnv("PG_USER", "postgres"),
			Password:   os.Getenv("PG_PASSWORD"),
			Database:   getEnv("PG_DB", "safaritracker"),
			SSLMode:    getEnv("PG_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "data/sightings.db"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		MQTT: MQTTConfig{
			Broker:   os.Getenv("MQTT_BROKER"),
			ClientID: getEnv("MQTT_CLIENT_ID", "safaritracker"),
			Username: os.Getenv("MQTT_USERNAME"),
			Password: os.Getenv("MQTT_PASSWORD"),
			QoS:      1,
		},
		Stats: StatsConfig{
			RefreshCron: getEnv("STATS_REFRESH_CRON", "*/5 * * * *"),
		},
	}

	var err error
	if cfg.Database.Port, err = getEnvInt("PG_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Store.Timeout, err = getEnvDuration("STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Stats.CacheTTL, err = getEnvDuration("STATS_CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Submit.RatePerSecond, err = getEnvFloat("SUBMIT_RATE_PER_SEC", 1); err != nil {
		return nil, err
	}
	if cfg.Submit.Burst, err = getEnvInt("SUBMIT_BURST", 5); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgREST:
		if c.Store.URL == "" {
			return fmt.Errorf("STORE_URL is required for the %s backend", BackendPostgREST)
		}
		if c.Store.APIKey == "" {
			return fmt.Errorf("STORE_API_KEY is required for the %s backend", BackendPostgREST)
		}
	case BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
