package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DBPath:    "./expenses.db",
		Backend:   "sqlite",
		LogLevel:  "info",
		LogFormat: "text",
		ExportDir: "./exports",
		CacheSize: 12,
		CacheTTL:  10 * time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory config without path",
			mutate: func(c *Config) {
				c.Backend = "memory"
				c.DBPath = ""
			},
			wantErr: false,
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.Backend = "postgres" },
			wantErr:     true,
			errorString: "invalid backend 'postgres': must be one of [sqlite memory]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty when using sqlite backend",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be 'text' or 'json'",
		},
		{
			name:        "cache size too small",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0: must be at least 1",
		},
		{
			name:        "cache size too large",
			mutate:      func(c *Config) { c.CacheSize = 5000 },
			wantErr:     true,
			errorString: "invalid cache size 5000: must be at most 1000",
		},
		{
			name:        "negative cache ttl",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid cache ttl -1s: must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want error containing %q", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	c := Config{Backend: "nope", LogLevel: "x", LogFormat: "y", CacheSize: 0}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"invalid backend", "invalid log level", "invalid log format", "invalid cache size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestConfig_ValidateDatabaseDirIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := validConfig()
	c.DBPath = filepath.Join(file, "expenses.db")
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "./expenses.db" || cfg.Backend != "sqlite" {
		t.Errorf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg)
	}
	if cfg.CacheSize != 12 || cfg.CacheTTL != 10*time.Minute {
		t.Errorf("unexpected cache defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("LEDGER_DB_PATH", "/tmp/ledger-test.db")
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("LEDGER_CACHE_SIZE", "3")
	t.Setenv("LEDGER_CACHE_TTL", "30s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/ledger-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.CacheSize != 3 {
		t.Errorf("CacheSize = %d", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "db_path: " + filepath.Join(dir, "file.db") + "\nlog_level: debug\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "file.db") || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("defaults lost for unset keys: %+v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
