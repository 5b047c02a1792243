// Package storage provides object storage abstractions used by the dataset
// downloader.
//
// The local backend is the on-disk dataset cache: downloaded files are
// written through it. The s3 backend serves as a download source for
// dataset files published to S3 or an S3-compatible store.
//
// # Backends
//
//   - storage/local: local filesystem, atomic writes
//   - storage/s3: Amazon S3 and S3-compatible storage
//
// Backends register themselves with RegisterFactory from an init function;
// import them for side effects before calling New.
package storage
