// Package download fetches dataset payloads into the local dataset
// directory.
//
// Each dataset directory may carry a urls.json file mapping payload file
// names to their source. Sources may be http(s)://, s3://bucket/key or
// file:// URLs. Files already present are left alone; missing ones are
// streamed into place through an atomic write, so an interrupted transfer
// never leaves a partial payload behind.
package download
