package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, `
runner:
  backend_url: http://localhost:8000/v1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Server.BasePath != "/v1" {
		t.Errorf("base_path = %q, want default /v1", cfg.Server.BasePath)
	}
	if cfg.Store.Retention != time.Hour {
		t.Errorf("retention = %s, want default 1h", cfg.Store.Retention)
	}
	if !cfg.Observability.Metrics.Enabled || cfg.Observability.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v, want enabled at /metrics", cfg.Observability.Metrics)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
gateway:
  model_name: my-agent
runner:
  backend_url: http://backend:8000/v1
  model: gpt-test
store:
  retention: 10m
  max_size: 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Gateway.ModelName != "my-agent" {
		t.Errorf("model_name = %q, want my-agent", cfg.Gateway.ModelName)
	}
	if cfg.Runner.Model != "gpt-test" {
		t.Errorf("runner model = %q, want gpt-test", cfg.Runner.Model)
	}
	if cfg.Store.Retention != 10*time.Minute || cfg.Store.MaxSize != 50 {
		t.Errorf("store = %+v, want 10m/50", cfg.Store)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
runner:
  backend_url: http://from-yaml:8000/v1
`)
	t.Setenv("GRAPHGATE_PORT", "7070")
	t.Setenv("GRAPHGATE_BACKEND_URL", "http://from-env:8000/v1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Runner.BackendURL != "http://from-env:8000/v1" {
		t.Errorf("backend_url = %q, want env override", cfg.Runner.BackendURL)
	}
}

func TestLoadAPIKeyFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(keyPath, []byte("  sk-secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := writeTempConfig(t, `
runner:
  backend_url: http://backend:8000/v1
  api_key_file: `+keyPath+`
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Runner.APIKey != "sk-secret" {
		t.Errorf("api_key = %q, want trimmed file content", cfg.Runner.APIKey)
	}
}

func TestValidateRejectsMissingBackendURL(t *testing.T) {
	path := writeTempConfig(t, `
gateway:
  agent_name: x
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "runner.backend_url") {
		t.Errorf("Load() error = %v, want backend_url validation failure", err)
	}
}

func TestValidateRejectsUnknownRunner(t *testing.T) {
	cfg := Defaults()
	cfg.Runner.Type = "carrier-pigeon"
	cfg.Runner.BackendURL = "http://x"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "runner.type") {
		t.Errorf("Validate() error = %v, want runner.type failure", err)
	}
}

func TestValidateRejectsBadStore(t *testing.T) {
	cfg := Defaults()
	cfg.Runner.BackendURL = "http://x"
	cfg.Store.Retention = 0
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "store.retention") {
		t.Errorf("Validate() error = %v, want store.retention failure", err)
	}
}
