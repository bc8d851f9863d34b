package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHost is used when SERVER_HOST is not set.
	DefaultHost = "localhost"
	// DefaultPort is used when SERVER_PORT is missing or not an integer.
	DefaultPort = 5555

	hostEnv       = "SERVER_HOST"
	portEnv       = "SERVER_PORT"
	configFileEnv = "GREETER_CONFIG"
	logLevelEnv   = "LOG_LEVEL"
	logFormatEnv  = "LOG_FORMAT"
)

// Config represents the main configuration structure for the greeter
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds the public listener configuration.
// Host and Port only ever come from the environment.
type ServerConfig struct {
	Host     string         `yaml:"-"`
	Port     int            `yaml:"-"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// TimeoutsConfig holds server timeouts in seconds
type TimeoutsConfig struct {
	Read     int `yaml:"read"`
	Write    int `yaml:"write"`
	Idle     int `yaml:"idle"`
	Shutdown int `yaml:"shutdown"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level         string          `yaml:"level"`
	Format        string          `yaml:"format"`
	IncludeCaller bool            `yaml:"include_caller"`
	RequestID     RequestIDConfig `yaml:"request_id"`
}

// RequestIDConfig controls request id propagation
type RequestIDConfig struct {
	Enabled bool   `yaml:"enabled"`
	Header  string `yaml:"header"`
}

// MetricsConfig holds the optional metrics listener settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// Addr returns the host:port pair the server binds to.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			RequestID: RequestIDConfig{Enabled: true},
		},
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
	}
}

// FromEnv resolves the bind host and port using lookup.
// A present SERVER_HOST is used verbatim, even when empty. A SERVER_PORT that
// is missing or does not parse as an integer falls back to DefaultPort.
func FromEnv(lookup func(string) (string, bool)) ServerConfig {
	sc := ServerConfig{Host: DefaultHost, Port: DefaultPort}

	if host, ok := lookup(hostEnv); ok {
		sc.Host = host
	}

	if raw, ok := lookup(portEnv); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			sc.Port = port
		}
	}

	return sc
}

// LoadFromEnv resolves the bind address from the process environment.
func LoadFromEnv() ServerConfig {
	return FromEnv(os.LookupEnv)
}

// LoadConfig loads configuration from the specified YAML file on top of defaults
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// Load builds the full configuration: defaults, then the optional file named
// by GREETER_CONFIG, then LOG_* overrides, then the bind address.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path, ok := lookup(configFileEnv); ok && strings.TrimSpace(path) != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level, ok := lookup(logLevelEnv); ok && level != "" {
		cfg.Logging.Level = level
	}
	if format, ok := lookup(logFormatEnv); ok && format != "" {
		cfg.Logging.Format = format
	}

	timeouts := cfg.Server.Timeouts
	cfg.Server = FromEnv(lookup)
	cfg.Server.Timeouts = timeouts

	return cfg, nil
}
