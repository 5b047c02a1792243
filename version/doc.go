// Package version reports the build of the gli module.
//
// Version and BuildTime can be set at link time:
//
//	go build -ldflags "-X github.com/kbukum/gli/version.Version=0.3.0"
//
// The commit and dirty flag come from the VCS stamp Go embeds in the binary.
package version
