package cache

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedConfig is the shape of a cache seed file:
//
//	cache_seed:
//	  - id: 8b431394-c095-4259-95c5-fc1a127a873a
//	    name: COLLECT
//	    type: database
//	    path: Home/Finance
type seedConfig struct {
	CacheSeed []seedEntry `yaml:"cache_seed"`
}

type seedEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// SeedFromFile loads entries from a YAML seed file into the store.
// Entries missing an id or name are skipped.
func (s *Store) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var cfg seedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, entry := range cfg.CacheSeed {
		if entry.ID == "" || entry.Name == "" {
			continue
		}
		if err := s.Upsert(ctx, entry.ID, entry.Name, entry.Type, entry.Path); err != nil {
			return fmt.Errorf("seed entry %q: %w", entry.Name, err)
		}
	}
	return nil
}
