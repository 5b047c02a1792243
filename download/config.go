package download

import (
	"fmt"

	"github.com/kbukum/gli/httpclient"
	"github.com/kbukum/gli/resilience"
	"github.com/kbukum/gli/storage/s3"
)

// URLsFile is the name of the per-dataset source manifest.
const URLsFile = "urls.json"

// Config configures the downloader.
type Config struct {
	// HTTP configures the client used for http(s) sources.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`

	// Retry covers a whole transfer, from opening the source to the last
	// byte written.
	Retry resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// S3 holds credentials and endpoint for s3:// sources. The bucket is
	// taken from each URL.
	S3 s3.Config `yaml:"s3" mapstructure:"s3"`

	// Concurrency is the number of files fetched at once. Defaults to 1.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// DefaultConfig returns the default downloader configuration.
func DefaultConfig() Config {
	cfg := Config{Retry: resilience.DefaultRetryConfig()}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.HTTP.ApplyDefaults()
	c.S3.ApplyDefaults()
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("download.retry.max_attempts must not be negative (got: %d)", c.Retry.MaxAttempts)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("download.concurrency must be at least 1 (got: %d)", c.Concurrency)
	}
	return nil
}
