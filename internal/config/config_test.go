package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearCocotbEnv blanks every override this package reads so host
// environment does not leak into assertions.
func clearCocotbEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COCOTB_CONFIG_PATH",
		"COCOTB_PORT",
		"COCOTB_READ_TIMEOUT",
		"COCOTB_WRITE_TIMEOUT",
		"COCOTB_SHUTDOWN_TIMEOUT",
		"COCOTB_RESULTS_PATH",
		"COCOTB_REGRESSION_MANAGER",
		"COCOTB_TEST_TIMEOUT",
		"COCOTB_LOG_LEVEL",
		"COCOTB_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearCocotbEnv(t)
	t.Setenv("COCOTB_CONFIG_PATH", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Results.Path != "data/results.db" {
		t.Errorf("Results.Path = %q, want data/results.db", cfg.Results.Path)
	}
	if cfg.Regression.Manager != "" {
		t.Errorf("Regression.Manager = %q, want empty", cfg.Regression.Manager)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if time.Duration(cfg.Server.ShutdownTimeout) != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", time.Duration(cfg.Server.ShutdownTimeout))
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearCocotbEnv(t)

	path := filepath.Join(t.TempDir(), "cocotb.yaml")
	content := `
server:
  port: 9000
  read_timeout: 5s
results:
  path: /tmp/cocotb-results.db
regression:
  manager: mock
  test_timeout: 2m
log:
  level: debug
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COCOTB_CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", time.Duration(cfg.Server.ReadTimeout))
	}
	// Unset fields keep their defaults.
	if time.Duration(cfg.Server.WriteTimeout) != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want default 30s", time.Duration(cfg.Server.WriteTimeout))
	}
	if cfg.Regression.Manager != "mock" {
		t.Errorf("Regression.Manager = %q, want mock", cfg.Regression.Manager)
	}
	if time.Duration(cfg.Regression.TestTimeout) != 2*time.Minute {
		t.Errorf("TestTimeout = %v, want 2m", time.Duration(cfg.Regression.TestTimeout))
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v, want debug/text", cfg.Log)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearCocotbEnv(t)

	path := filepath.Join(t.TempDir(), "cocotb.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COCOTB_CONFIG_PATH", path)
	t.Setenv("COCOTB_PORT", "9001")
	t.Setenv("COCOTB_REGRESSION_MANAGER", "mock")
	t.Setenv("COCOTB_TEST_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want env override 9001", cfg.Server.Port)
	}
	if cfg.Regression.Manager != "mock" {
		t.Errorf("Regression.Manager = %q, want mock", cfg.Regression.Manager)
	}
	if time.Duration(cfg.Regression.TestTimeout) != 30*time.Second {
		t.Errorf("TestTimeout = %v, want 30s", time.Duration(cfg.Regression.TestTimeout))
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearCocotbEnv(t)

	path := filepath.Join(t.TempDir(), "cocotb.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COCOTB_CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid YAML succeeded, want error")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	clearCocotbEnv(t)

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadFromFile(missing) succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty results path", func(c *Config) { c.Results.Path = "" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative test timeout", func(c *Config) { c.Regression.TestTimeout = Duration(-time.Second) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newDefaults()
			tc.mutate(cfg)
			err := cfg.validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestDuration_UnmarshalInvalid(t *testing.T) {
	clearCocotbEnv(t)

	path := filepath.Join(t.TempDir(), "cocotb.yaml")
	if err := os.WriteFile(path, []byte("server:\n  read_timeout: banana\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COCOTB_CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid duration succeeded, want error")
	}
}
