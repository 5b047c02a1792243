package dataloading

import (
	"context"

	"github.com/kbukum/gli/config"
	"github.com/kbukum/gli/logger"
	"github.com/kbukum/gli/observability"
)

// Setup initializes the process-wide logger and telemetry providers from
// cfg. Call it once before New; the returned func flushes the exporters.
func Setup(ctx context.Context, cfg *config.Config) (observability.ShutdownFunc, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging)
	return observability.Setup(ctx, cfg.Observability)
}
