// Package util holds small generic helpers shared across gli packages.
package util
