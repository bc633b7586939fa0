package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reactorctl.json"

	// DefaultPort is the default port the collaborator HTTP/WebSocket server binds to.
	DefaultPort = 4173

	// DefaultHost is the default host the collaborator server binds to.
	DefaultHost = "localhost"

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"
)

// Config is the complete reactorctl.json configuration for the collaborator
// server and CLI.
type Config struct {
	// Host is the address the collaborator server binds to.
	Host string `json:"host,omitempty"`

	// Port is the port the collaborator server listens on.
	Port int `json:"port,omitempty"`

	// LogLevel is the slog level name: "debug", "info", "warn", or "error".
	LogLevel string `json:"logLevel,omitempty"`

	// MetricsPort is the port the Prometheus /metrics endpoint is exposed on,
	// separate from the main server so scraping never competes with
	// dashboard traffic.
	MetricsPort int `json:"metricsPort,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// New creates a Config populated with default values.
func New() *Config {
	return &Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		MetricsPort: DefaultPort + 1,
	}
}

// Load reads reactorctl.json from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config: no %s found in %s: %w", ConfigFileName, filepath.Dir(path), err)
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("config: no path set, use SaveTo")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, or "" if it was never
// loaded from or saved to a file.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero-valued fields with their defaults.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = c.Port + 1
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("config: metricsPort %d out of range", c.MetricsPort)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unrecognized logLevel %q", c.LogLevel)
	}
	return nil
}

// Address returns the host:port string the collaborator server binds to.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsAddress returns the host:port string the Prometheus endpoint binds to.
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Exists reports whether a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
