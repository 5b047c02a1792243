// Package config loads loader configuration from YAML files, .env files
// and GLI_-prefixed environment variables.
//
// Files are searched in standard locations unless given explicitly:
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(config.WithConfigFile("./gli.yml"))
//
// Environment variables override file values. Nested keys are separated by
// underscores: GLI_ROOT_PATH sets root_path and GLI_DOWNLOAD_HTTP_TIMEOUT
// sets download.http.timeout.
package config
