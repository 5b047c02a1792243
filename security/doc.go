// Package security holds the TLS settings used when fetching dataset files
// from mirrors that require a private CA or client certificates.
//
//	cfg := security.TLSConfig{CAFile: "/etc/gli/mirror-ca.pem"}
//	tlsConfig, err := cfg.Build()
package security
