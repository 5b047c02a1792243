package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/gli/resilience"
	"github.com/kbukum/gli/security"
)

const (
	defaultTimeout   = 10 * time.Minute
	defaultUserAgent = "gli-go"
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to relative request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole request including reading the body. Defaults to 10m.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent with every request unless Headers overrides it.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures server verification and client certificates.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return c.TLS.Validate()
}

// DefaultRetryConfig returns a retry config that only retries errors the
// client classifies as retryable.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}
