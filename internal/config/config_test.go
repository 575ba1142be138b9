package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE_DRIVER", "EXPORT_ATTEMPTS", "EXPORT_MARGIN_MM", "S3_BUCKET", "SESSION_COOKIE", "SESSION_CACHE_SIZE", "SESSION_IDLE_MINUTES"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 3000 || cfg.Server.SessionCookie != "resume_session" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.SessionCacheSize != 1000 || cfg.Server.SessionIdleTTL != 30*time.Minute {
		t.Errorf("session cache = %d, %s", cfg.Server.SessionCacheSize, cfg.Server.SessionIdleTTL)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.Export.Attempts != 3 || cfg.Export.MarginMM != 12 || cfg.Export.Landscape {
		t.Errorf("export = %+v", cfg.Export)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/r.db")
	t.Setenv("EXPORT_MARGIN_MM", "10.5")
	t.Setenv("EXPORT_LANDSCAPE", "true")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 || cfg.Storage.Driver != DriverSQLite || cfg.Storage.SQLitePath != "/tmp/r.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Export.MarginMM != 10.5 || !cfg.Export.Landscape {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("invalid int should fall back, got %d", cfg.Redis.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 3000, SessionCookie: "s", SessionCacheSize: 10, SessionIdleTTL: time.Minute},
			Storage: StorageConfig{Driver: DriverMemory},
			Export:  ExportConfig{Attempts: 3, MarginMM: 12},
		}
	}
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"ok", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "PORT"},
		{"no session cache", func(c *Config) { c.Server.SessionCacheSize = 0 }, "SESSION_CACHE_SIZE"},
		{"no idle ttl", func(c *Config) { c.Server.SessionIdleTTL = 0 }, "SESSION_IDLE_MINUTES"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "STORAGE_DRIVER"},
		{"postgres without url", func(c *Config) { c.Storage.Driver = DriverPostgres }, "STORAGE_DATABASE_URL"},
		{"zero attempts", func(c *Config) { c.Export.Attempts = 0 }, "EXPORT_ATTEMPTS"},
		{"bucket without keys", func(c *Config) { c.S3.Bucket = "b" }, "S3_ACCESS_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mut(c)
			err := c.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}
