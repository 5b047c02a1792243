package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.RootPath != DefaultRootPath {
		t.Errorf("RootPath = %q", cfg.RootPath)
	}
	if cfg.Device != "cpu" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if !cfg.IsVerbose() {
		t.Error("expected verbose by default")
	}
	if cfg.Download.Concurrency != 1 {
		t.Errorf("Download.Concurrency = %d", cfg.Download.Concurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad sample rate", func(c *Config) { c.Observability.SampleRate = 2 }, "sample_rate"},
		{"bad concurrency", func(c *Config) { c.Download.Concurrency = 0 }, "concurrency"},
		{"empty device", func(c *Config) { c.Device = "" }, "device"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gli.yml")

	yamlContent := `
root_path: /data/gli
device: cuda:0
verbose: false
logging:
  level: debug
  format: json
download:
  concurrency: 4
  http:
    timeout: 30s
  retry:
    max_attempts: 5
  s3:
    region: eu-west-1
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "absent.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RootPath != "/data/gli" || cfg.Device != "cuda:0" {
		t.Errorf("root %q device %q", cfg.RootPath, cfg.Device)
	}
	if cfg.IsVerbose() {
		t.Error("expected verbose=false")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging %+v", cfg.Logging)
	}
	if cfg.Download.Concurrency != 4 {
		t.Errorf("concurrency = %d", cfg.Download.Concurrency)
	}
	if cfg.Download.HTTP.Timeout != 30*time.Second {
		t.Errorf("http timeout = %v", cfg.Download.HTTP.Timeout)
	}
	if cfg.Download.Retry.MaxAttempts != 5 {
		t.Errorf("retry attempts = %d", cfg.Download.Retry.MaxAttempts)
	}
	if cfg.Download.Retry.InitialBackoff != 200*time.Millisecond {
		t.Errorf("retry backoff default lost: %v", cfg.Download.Retry.InitialBackoff)
	}
	if cfg.Download.S3.Region != "eu-west-1" {
		t.Errorf("s3 region = %q", cfg.Download.S3.Region)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gli.yml")
	if err := os.WriteFile(configPath, []byte("root_path: /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GLI_ROOT_PATH", "/from/env")
	t.Setenv("GLI_DOWNLOAD_HTTP_TIMEOUT", "45s")
	t.Setenv("GLI_DOWNLOAD_S3_ACCESS_KEY", "id")
	t.Setenv("GLI_DOWNLOAD_S3_SECRET_KEY", "secret")
	t.Setenv("ROOT_PATH", "/ignored/without/prefix")

	cfg, err := Load(WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "absent.env")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RootPath != "/from/env" {
		t.Errorf("RootPath = %q", cfg.RootPath)
	}
	if cfg.Download.HTTP.Timeout != 45*time.Second {
		t.Errorf("http timeout = %v", cfg.Download.HTTP.Timeout)
	}
	if cfg.Download.S3.AccessKey != "id" || cfg.Download.S3.SecretKey != "secret" {
		t.Errorf("s3 credentials %q/%q", cfg.Download.S3.AccessKey, cfg.Download.S3.SecretKey)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GLI_DEVICE=cuda:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GLI_DEVICE") })

	cfg, err := Load(WithConfigFile(filepath.Join(dir, "absent.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Device != "cuda:1" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if cfg.RootPath != DefaultRootPath {
		t.Errorf("RootPath = %q", cfg.RootPath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gli.yml")
	if err := os.WriteFile(p, []byte("root_path: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(WithConfigFile(p), WithFileSystem(&mockFS{files: map[string]bool{p: true}})); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/config.yml": true,
		"./.env":              true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles(LoaderConfig{})
	if files.ConfigFile != "./config/config.yml" {
		t.Errorf("expected ./config/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected ./.env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles(LoaderConfig{ConfigFile: "/etc/gli.yml"})
	if explicit.ConfigFile != "/etc/gli.yml" {
		t.Errorf("explicit config file ignored: %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"DEVICE", []string{"device"}},
		{"ROOT_PATH", []string{"root_path", "root.path"}},
		{"DOWNLOAD_HTTP_TIMEOUT", []string{
			"download_http_timeout", "download.http.timeout", "download.http_timeout",
		}},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := generateEnvKeyVariants(tc.key); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
