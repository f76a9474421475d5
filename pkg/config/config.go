// Package config provides unified configuration for the graphgate gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (GRAPHGATE_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the graphgate gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Gateway       GatewayConfig       `yaml:"gateway"`
	Runner        RunnerConfig        `yaml:"runner"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	BasePath     string        `yaml:"base_path"`     // default: "/v1"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 0 (streaming responses are open-ended)
	MaxBodySize  int64         `yaml:"max_body_size"` // default: 10 MiB
}

// GatewayConfig holds the identity the gateway advertises on /health and
// /v1/models.
type GatewayConfig struct {
	AgentName string `yaml:"agent_name"` // default: "graphgate"
	Version   string `yaml:"version"`    // default: "0.1.0"
	ModelName string `yaml:"model_name"` // default: "graph-agent"
	OwnedBy   string `yaml:"owned_by"`   // default: "graphgate"
}

// RunnerConfig holds graph runner backend settings.
type RunnerConfig struct {
	Type       string `yaml:"type"`         // "openai-chat", default: "openai-chat"
	BackendURL string `yaml:"backend_url"`  // required for openai-chat
	APIKey     string `yaml:"api_key"`      // optional
	APIKeyFile string `yaml:"api_key_file"` // _file variant for api_key
	Model      string `yaml:"model"`        // model forwarded to the backend
}

// StoreConfig holds conversation store settings.
type StoreConfig struct {
	Retention time.Duration `yaml:"retention"` // default: 1h
	MaxSize   int           `yaml:"max_size"`  // default: 10000, 0 = unlimited
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			BasePath:    "/v1",
			ReadTimeout: 30 * time.Second,
			MaxBodySize: 10 << 20,
		},
		Gateway: GatewayConfig{
			AgentName: "graphgate",
			Version:   "0.1.0",
			ModelName: "graph-agent",
			OwnedBy:   "graphgate",
		},
		Runner: RunnerConfig{
			Type: "openai-chat",
		},
		Store: StoreConfig{
			Retention: time.Hour,
			MaxSize:   10000,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
