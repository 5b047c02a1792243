// Package logger provides structured logging for the dataset loader using
// zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. Progress output that callers may silence (the
// "verbose" flag of the loading functions) goes through Verbose, which
// returns a disabled logger when verbosity is off.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("download")
//	log.Verbose(verbose).Info("fetched file", logger.Fields("file", name))
package logger
