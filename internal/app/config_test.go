package app

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_SIZE", "")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("address: got %q", cfg.Address())
	}
	if cfg.PageSize != 20 || cfg.MaxPageSize != 100 {
		t.Fatalf("page sizes: got %d/%d", cfg.PageSize, cfg.MaxPageSize)
	}
	if cfg.AuthCacheTTL != 30*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("durations: got %s/%s", cfg.AuthCacheTTL, cfg.ShutdownTimeout)
	}
}

func TestLoadConfigYAMLWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := strings.Join([]string{
		"port: \"9000\"",
		"db:",
		"  driver: sqlite",
		"  sqlite_path: ${RENTALS_TEST_DIR}/app.db",
		"redis:",
		"  addr: redis:6379",
		"page_size: 10",
		"cors_allowed_origins: [\"https://rentals.example\"]",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RENTALS_TEST_DIR", dir)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("PORT", "7000")
	t.Setenv("REDIS_CHANNEL", "bookings.test")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("env should override yaml port, got %q", cfg.Port)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != filepath.Join(dir, "app.db") {
		t.Fatalf("db: got %+v", cfg.DB)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.Channel != "bookings.test" {
		t.Fatalf("redis: got %+v", cfg.Redis)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("page size: got %d", cfg.PageSize)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://rentals.example"}) {
		t.Fatalf("origins: got %v", cfg.AllowedOrigins)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "page size above max", mutate: func(c *Config) { c.PageSize = 500 }, wantErr: true},
		{name: "production without secret", mutate: func(c *Config) { c.LogMode = "production" }, wantErr: true},
		{name: "production with secret", mutate: func(c *Config) {
			c.LogMode = "production"
			c.JWTSecretKey = "s3cret"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate: err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
