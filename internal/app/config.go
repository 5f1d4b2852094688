package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	redisbus "github.com/yungbote/rentals-backend/internal/clients/redis"
	"github.com/yungbote/rentals-backend/internal/data/db"
	"github.com/yungbote/rentals-backend/internal/http/middleware"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/envutil"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	DB DBConfig `yaml:"db"`

	JWTSecretKey string        `yaml:"jwt_secret_key"`
	AuthCacheTTL time.Duration `yaml:"auth_cache_ttl"`

	Redis RedisConfig `yaml:"redis"`

	MetricsEnabled bool       `yaml:"metrics_enabled"`
	Otel           OtelConfig `yaml:"otel"`

	AllowedOrigins  []string      `yaml:"cors_allowed_origins"`
	PageSize        int           `yaml:"page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DBConfig struct {
	Driver           string `yaml:"driver"`
	SQLitePath       string `yaml:"sqlite_path"`
	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresName     string `yaml:"postgres_name"`
	PostgresSSLMode  string `yaml:"postgres_sslmode"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	MaxIdleConns     int    `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Version     string  `yaml:"version"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// DefaultConfig is the configuration before any file or environment overrides.
func DefaultConfig() Config {
	return Config{
		Port:    "8080",
		LogMode: "development",
		DB: DBConfig{
			Driver:          db.DriverPostgres,
			SQLitePath:      "rentals.db",
			PostgresHost:    "localhost",
			PostgresPort:    "5432",
			PostgresUser:    "postgres",
			PostgresName:    "rentals",
			PostgresSSLMode: "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
		},
		AuthCacheTTL: 30 * time.Second,
		Redis:        RedisConfig{Channel: "rentals.bookings"},
		Otel: OtelConfig{
			ServiceName: "rentals-api",
			Environment: "development",
			SampleRatio: 1,
		},
		AllowedOrigins:  middleware.DefaultAllowedOrigins,
		PageSize:        20,
		MaxPageSize:     100,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig reads .env, then the optional CONFIG_FILE document, then lets
// environment variables override whatever was loaded.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Could not load .env", "error", err)
	}

	cfg := DefaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		log.Info("Loading config file", "path", path)
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	cfg.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.DB.Driver))
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)
	cfg.DB.PostgresHost = envutil.String("POSTGRES_HOST", cfg.DB.PostgresHost)
	cfg.DB.PostgresPort = envutil.String("POSTGRES_PORT", cfg.DB.PostgresPort)
	cfg.DB.PostgresUser = envutil.String("POSTGRES_USER", cfg.DB.PostgresUser)
	cfg.DB.PostgresPassword = envutil.String("POSTGRES_PASSWORD", cfg.DB.PostgresPassword)
	cfg.DB.PostgresName = envutil.String("POSTGRES_NAME", cfg.DB.PostgresName)
	cfg.DB.PostgresSSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.PostgresSSLMode)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AuthCacheTTL = envutil.Duration("AUTH_CACHE_TTL", cfg.AuthCacheTTL)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)

	cfg.AllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.PageSize = envutil.Int("PAGE_SIZE", cfg.PageSize)
	cfg.MaxPageSize = envutil.Int("MAX_PAGE_SIZE", cfg.MaxPageSize)
	cfg.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.PageSize <= 0 || c.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive (PAGE_SIZE=%d, MAX_PAGE_SIZE=%d)", c.PageSize, c.MaxPageSize)
	}
	if c.PageSize > c.MaxPageSize {
		return fmt.Errorf("PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", c.PageSize, c.MaxPageSize)
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required in production")
	}
	return nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(c.LogMode) {
	case "prod", "production":
		return true
	}
	return false
}

func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Database is the connection config for the configured driver.
func (c Config) Database() db.Config {
	return db.Config{
		Driver:           c.DB.Driver,
		SQLitePath:       c.DB.SQLitePath,
		PostgresHost:     c.DB.PostgresHost,
		PostgresPort:     c.DB.PostgresPort,
		PostgresUser:     c.DB.PostgresUser,
		PostgresPassword: c.DB.PostgresPassword,
		PostgresName:     c.DB.PostgresName,
		PostgresSSLMode:  c.DB.PostgresSSLMode,
		MaxOpenConns:     c.DB.MaxOpenConns,
		MaxIdleConns:     c.DB.MaxIdleConns,
	}
}

func (c Config) redisConfig() redisbus.Config {
	return redisbus.Config{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		Channel:  c.Redis.Channel,
	}
}

func (c Config) otelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Version:     c.Otel.Version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
