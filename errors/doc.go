// Package errors provides the structured error type shared by the dataset
// loader and its collaborators. Every error carries a machine-readable code,
// a human-readable message and retryable detection.
package errors
