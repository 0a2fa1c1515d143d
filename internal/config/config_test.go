package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setConnectionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "app")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASS", "p")
}

func TestLoad_EnvOnly(t *testing.T) {
	setConnectionEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 5000 {
		t.Errorf("server = %s:%d; want 0.0.0.0:5000", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		t.Errorf("mode = %q; want release", cfg.Server.Mode)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q; want postgres", cfg.Database.Driver)
	}
	pg := cfg.Database.Postgres
	if pg.Host != "db" || pg.DBName != "app" || pg.User != "u" || pg.Password != "p" {
		t.Errorf("unexpected postgres config: %+v", pg)
	}
	if pg.Port != 5432 {
		t.Errorf("port = %d; want default 5432", pg.Port)
	}
}

func TestLoad_DBPortOverride(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Postgres.Port != 5433 {
		t.Errorf("port = %d; want 5433", cfg.Database.Postgres.Port)
	}
}

func TestLoad_MissingConnectionVars(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{"missing host", "DB_HOST"},
		{"missing name", "DB_NAME"},
		{"missing user", "DB_USER"},
		{"missing password", "DB_PASS"},
	}

	all := map[string]string{"DB_HOST": "db", "DB_NAME": "app", "DB_USER": "u", "DB_PASS": "p"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range all {
				if k == tt.omit {
					t.Setenv(k, "")
					continue
				}
				t.Setenv(k, v)
			}

			if _, err := Load(""); err == nil {
				t.Fatalf("expected error when %s is unset", tt.omit)
			}
		})
	}
}

func TestLoad_AppOverlay(t *testing.T) {
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__DATABASE__SQLITE__PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("APP__SERVER__PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q; want sqlite", cfg.Database.Driver)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d; want 9090", cfg.Server.Port)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := strings.Join([]string{
		"server:",
		"  host: 127.0.0.1",
		"  port: 8080",
		"  mode: test",
		"database:",
		"  driver: sqlite",
		"  sqlite:",
		"    path: " + filepath.Join(dir, "data.db"),
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server = %s:%d; want 127.0.0.1:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.Mode != gin.TestMode {
		t.Errorf("mode = %q; want test", cfg.Server.Mode)
	}
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	setConnectionEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with absent file: %v", err)
	}
	if cfg.Database.Postgres.Host != "db" {
		t.Errorf("host = %q; want db", cfg.Database.Postgres.Host)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLite.Path = "data/app.db"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid sqlite", func(c *Config) {}, false},
		{"invalid mode", func(c *Config) { c.Server.Mode = "production" }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty host", func(c *Config) { c.Server.Host = "  " }, true},
		{"invalid driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.Database.SQLite.Path = "" }, true},
		{"invalid sslmode", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.Postgres = PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "app", SSLMode: "maybe"}
		}, true},
		{"invalid lifetime", func(c *Config) { c.Database.Pool.ConnMaxLifetime = "soon" }, true},
		{"negative lifetime", func(c *Config) { c.Database.Pool.ConnMaxLifetime = "-1h" }, true},
		{"invalid log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
