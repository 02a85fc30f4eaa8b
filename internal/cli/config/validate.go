package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapadmin/pkg/adapter"
)

// Validate checks if the configuration is valid. The adapter registry
// is the source of truth for supported target types.
func (c *Config) Validate() error {
	if c.Target.Type == "" {
		return fmt.Errorf("target.type is required")
	}
	if !adapter.IsRegistered(c.Target.Type) {
		return fmt.Errorf("unsupported target type %q (supported: %s)",
			c.Target.Type, strings.Join(adapter.ListAdapters(), ", "))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	return nil
}
