package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.MetricsPort != DefaultPort+1 {
		t.Errorf("MetricsPort = %d, want %d", cfg.MetricsPort, DefaultPort+1)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); err == nil {
		t.Error("expected error for missing config")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "host": "0.0.0.0",
  "port": 8080,
  "logLevel": "debug"
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want %q", cfg.Host, "0.0.0.0")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want %d", cfg.Port, 8080)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	// MetricsPort was not in the JSON, so applyDefaults derives it from Port.
	if cfg.MetricsPort != 8081 {
		t.Errorf("MetricsPort = %d, want %d", cfg.MetricsPort, 8081)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Port = 9000

	if err := cfg.Save(); err == nil {
		t.Error("expected error when saving without a path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Port != 9000 {
		t.Errorf("Port = %d, want %d", loaded.Port, 9000)
	}

	loaded.Port = 9001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Port != 9001 {
		t.Errorf("Port = %d, want %d", reloaded.Port, 9001)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate should pass for a default config: %v", err)
	}

	cfg.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail for a negative port")
	}

	cfg = New()
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail for a port > 65535")
	}

	cfg = New()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail for an unrecognized log level")
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	cfg.Host = "0.0.0.0"
	cfg.Port = 8080

	if got := cfg.Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address = %q, want %q", got, "0.0.0.0:8080")
	}
}

func TestMetricsAddress(t *testing.T) {
	cfg := New()
	cfg.Host = "0.0.0.0"
	cfg.MetricsPort = 9090

	if got := cfg.MetricsAddress(); got != "0.0.0.0:9090" {
		t.Errorf("MetricsAddress = %q, want %q", got, "0.0.0.0:9090")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for an empty directory")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating a config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}
