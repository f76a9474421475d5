package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	switch c.Runner.Type {
	case "openai-chat":
		if c.Runner.BackendURL == "" {
			errs = append(errs, fmt.Errorf("runner.backend_url is required when runner.type is \"openai-chat\""))
		}
	default:
		errs = append(errs, fmt.Errorf("runner.type must be \"openai-chat\", got %q", c.Runner.Type))
	}

	if c.Store.Retention <= 0 {
		errs = append(errs, fmt.Errorf("store.retention must be > 0, got %s", c.Store.Retention))
	}

	if c.Store.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("store.max_size must be >= 0, got %d", c.Store.MaxSize))
	}

	return errors.Join(errs...)
}
