package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 when a cache addr is set (got %v)", c.Redis.TTL)
	}

	if c.Enrichment.BatchDelay < 0 {
		return fmt.Errorf("enrichment.batch_delay must be >= 0 (got %v)", c.Enrichment.BatchDelay)
	}
	if c.Enrichment.BatchLimit <= 0 {
		return fmt.Errorf("enrichment.batch_limit must be > 0 (got %d)", c.Enrichment.BatchLimit)
	}
	if c.Enrichment.AIEnabled() && c.Enrichment.Model == "" {
		return fmt.Errorf("enrichment.model must be set when an api key is configured")
	}

	return nil
}
