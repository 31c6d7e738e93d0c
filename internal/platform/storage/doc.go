// Package storage downloads the customization bundle from an
// S3-compatible object store.
//
// The default endpoint is the Google Cloud Storage XML interoperability
// API, which speaks the S3 protocol with HMAC credentials, so the same
// client serves gs:// and s3:// source paths. Credentials come from the
// standard SDK chain (environment, shared config).
package storage
