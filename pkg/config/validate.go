package config

import "fmt"

// ValidateCore checks the settings the query service cannot start without.
func (c *Config) ValidateCore() error {
	switch c.Data.Source {
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when SALES_SOURCE=%s", SourcePostgres)
		}
	case SourceSnapshot:
		if c.Data.DatasetPath == "" {
			return fmt.Errorf("SALES_DATASET_PATH is required when SALES_SOURCE=%s", SourceSnapshot)
		}
	default:
		return fmt.Errorf("unknown SALES_SOURCE %q (expected %s or %s)", c.Data.Source, SourcePostgres, SourceSnapshot)
	}
	return nil
}
