package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache drivers.
const (
	CacheDriverFile     = "file"
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
	CacheDriverMemory   = "memory"
)

// Corrupt document policies.
const (
	CorruptPolicyEmpty = "empty"
	CorruptPolicyError = "error"
)

// Ticket id strategies.
const (
	IDStrategyMillis = "millis"
	IDStrategyUUID   = "uuid"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Cache    CacheConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Ticket   TicketConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	Locale                string
	Timezone              string
}

// CacheConfig selects where the ticket document lives.
type CacheConfig struct {
	Driver           string
	Key              string
	FilePath         string
	CorruptPolicy    string
	ReloadAfterWrite bool
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TicketConfig controls how new tickets are stamped.
type TicketConfig struct {
	IDStrategy string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-calendar"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			Locale:                strings.ToLower(getEnv("APP_LOCALE", "es")),
			Timezone:              getEnv("APP_TIMEZONE", "UTC"),
		},
		Cache: CacheConfig{
			Driver:           strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverFile)),
			Key:              getEnv("CACHE_KEY", "miGestorTickets"),
			FilePath:         getEnv("CACHE_FILE_PATH", "data/tickets.json"),
			CorruptPolicy:    strings.ToLower(getEnv("CACHE_CORRUPT_POLICY", CorruptPolicyEmpty)),
			ReloadAfterWrite: getEnvAsBool("CACHE_RELOAD_AFTER_WRITE", false),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Ticket: TicketConfig{
			IDStrategy: strings.ToLower(getEnv("TICKET_ID_STRATEGY", IDStrategyMillis)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Driver {
	case CacheDriverFile, CacheDriverRedis, CacheDriverPostgres, CacheDriverMemory:
	default:
		return fmt.Errorf("invalid CACHE_DRIVER %q", c.Cache.Driver)
	}
	if c.Cache.Driver == CacheDriverPostgres && c.Postgres.DSN == "" {
		return fmt.Errorf("POSTGRES_DSN required when CACHE_DRIVER=%s", CacheDriverPostgres)
	}
	if strings.TrimSpace(c.Cache.Key) == "" {
		return fmt.Errorf("CACHE_KEY must not be empty")
	}
	switch c.Cache.CorruptPolicy {
	case CorruptPolicyEmpty, CorruptPolicyError:
	default:
		return fmt.Errorf("invalid CACHE_CORRUPT_POLICY %q", c.Cache.CorruptPolicy)
	}
	switch c.Ticket.IDStrategy {
	case IDStrategyMillis, IDStrategyUUID:
	default:
		return fmt.Errorf("invalid TICKET_ID_STRATEGY %q", c.Ticket.IDStrategy)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location returns the timezone used to decide which day is "today".
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsLocal reports whether the document never leaves this machine.
func (c CacheConfig) IsLocal() bool {
	return c.Driver == CacheDriverFile || c.Driver == CacheDriverMemory
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
