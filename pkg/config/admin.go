package config

import (
	"fmt"
	"strings"
)

// AdminConfig holds the pre-shared secret gating admin operations.
// The secret is compared byte for byte against the X-Admin-Key header.
type AdminConfig struct {
	Key string `koanf:"key"`
}

// String returns a string representation of the admin configuration
// with the secret masked.
func (c *AdminConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Admin ---\n")
	b.WriteString(fmt.Sprintf("  key: %s\n", maskSecret(c.Key)))
	return b.String()
}

func (c *AdminConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("admin key is not configured")
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}
