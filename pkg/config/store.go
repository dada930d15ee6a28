package config

import (
	"fmt"
	"strings"
)

// StoreConfig holds the filesystem roots for the JSON document stores.
// Cart and checkout dirs contain one <key>.json per user; the catalog
// dir holds the single shared product.json.
type StoreConfig struct {
	CartDir     string `koanf:"cartDir"`
	CheckoutDir string `koanf:"checkoutDir"`
	CatalogDir  string `koanf:"catalogDir"`
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  cartDir: %s\n", c.CartDir))
	b.WriteString(fmt.Sprintf("  checkoutDir: %s\n", c.CheckoutDir))
	b.WriteString(fmt.Sprintf("  catalogDir: %s\n", c.CatalogDir))
	return b.String()
}

func (c *StoreConfig) Validate() error {
	if c.CartDir == "" {
		return fmt.Errorf("store cart directory is not configured")
	}
	if c.CheckoutDir == "" {
		return fmt.Errorf("store checkout directory is not configured")
	}
	if c.CatalogDir == "" {
		return fmt.Errorf("store catalog directory is not configured")
	}
	return nil
}
