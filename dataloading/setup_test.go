package dataloading

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/gli/config"
	"github.com/kbukum/gli/logger"
)

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"error", zerolog.ErrorLevel},
		{"debug", zerolog.DebugLevel},
		{"disabled", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.Default()
			cfg.RootPath = t.TempDir()
			cfg.Logging.Level = tt.level

			l, err := New(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := l.log.GetLogger().GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWithLoggerOverridesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.RootPath = t.TempDir()
	cfg.Logging.Level = "error"

	l, err := New(cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.log.GetLogger().GetLevel(); got == zerolog.ErrorLevel {
		t.Error("expected the supplied logger, not one built from config")
	}
}

func TestSetup(t *testing.T) {
	prev := logger.GetGlobalLogger()
	t.Cleanup(func() { logger.SetGlobalLogger(prev) })

	cfg := config.Default()
	cfg.Logging.Level = "warn"

	shutdown, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
	if got := logger.GetGlobalLogger().GetLogger().GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("global level = %v, want warn", got)
	}

	bad := config.Default()
	bad.Observability.SampleRate = 2
	if _, err := Setup(context.Background(), bad); err == nil {
		t.Error("expected invalid config error")
	}
}
