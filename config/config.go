package config

import (
	"fmt"

	"github.com/kbukum/gli/download"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/observability"
	"github.com/kbukum/gli/util"
	"github.com/kbukum/gli/validation"
)

// Defaults.
const (
	DefaultRootPath = "."
	DefaultDevice   = "cpu"
)

// Config is the loader configuration.
type Config struct {
	// RootPath holds the datasets/ directory.
	RootPath string `yaml:"root_path" mapstructure:"root_path" validate:"required"`

	// Device is the default device passed to the graph reader.
	Device string `yaml:"device" mapstructure:"device" validate:"required"`

	// Verbose is the default verbosity of loader calls. Nil means true.
	Verbose *bool `yaml:"verbose" mapstructure:"verbose"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Download      download.Config      `yaml:"download" mapstructure:"download"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Download: download.DefaultConfig()}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.RootPath = util.Coalesce(c.RootPath, DefaultRootPath)
	c.Device = util.Coalesce(c.Device, DefaultDevice)
	if c.Verbose == nil {
		c.Verbose = util.Ptr(true)
	}
	c.Logging.ApplyDefaults()
	c.Download.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Download.Validate(); err != nil {
		return fmt.Errorf("config.download: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// IsVerbose reports the default verbosity.
func (c *Config) IsVerbose() bool {
	return util.Deref(c.Verbose, true)
}
