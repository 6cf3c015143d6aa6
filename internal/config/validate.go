package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateHashing(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateHashing() error {
	if c.Hashing.ReadBufferSize < minReadBufferSize || c.Hashing.ReadBufferSize > maxReadBufferSize {
		return fmt.Errorf("hashing.read_buffer_size must be between %d and %d", minReadBufferSize, maxReadBufferSize)
	}
	if c.Hashing.Workers < 1 || c.Hashing.Workers > maxWorkers {
		return fmt.Errorf("hashing.workers must be between 1 and %d", maxWorkers)
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.MinSize < 0 {
		return errors.New("scan.min_size must be non-negative")
	}
	if c.Scan.MaxSize < 0 {
		return errors.New("scan.max_size must be non-negative")
	}
	if c.Scan.MaxSize > 0 && c.Scan.MaxSize < c.Scan.MinSize {
		return errors.New("scan.max_size must not be below scan.min_size")
	}
	for _, pattern := range c.Scan.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("scan.exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
