package config

import (
	"fmt"
)

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.APIPort < 1 || c.Server.APIPort > 65535 {
		return fmt.Errorf("invalid api_port: %d", c.Server.APIPort)
	}
	if c.Server.AdminPort < 1 || c.Server.AdminPort > 65535 {
		return fmt.Errorf("invalid admin_port: %d", c.Server.AdminPort)
	}
	if c.Server.APIPort == c.Server.AdminPort {
		return fmt.Errorf("api_port and admin_port must differ (both %d)", c.Server.APIPort)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	return nil
}
