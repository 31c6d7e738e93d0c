package metadata

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrorKind classifies a failed metadata lookup.
type ErrorKind int

const (
	// KindTransport covers transport failures that are neither name
	// resolution nor connection errors.
	KindTransport ErrorKind = iota

	// KindNameResolution is a DNS failure reaching the metadata host.
	KindNameResolution

	// KindConnection is a failure to establish or keep the connection.
	KindConnection

	// KindStatus is a completed request that returned a non-200 status.
	KindStatus
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNameResolution:
		return "name resolution failure"
	case KindConnection:
		return "connection failure"
	case KindStatus:
		return "unexpected status"
	default:
		return "transport failure"
	}
}

// Retryable reports whether lookups failing with this kind should be
// retried. Only name resolution and connection failures are transient;
// everything else, a non-200 status included, is fatal.
func (k ErrorKind) Retryable() bool {
	return k == KindNameResolution || k == KindConnection
}

// ExitCode returns the process exit status the standalone metadata
// utility signals for this kind. The values match the exit codes of the
// transport tooling the build workflow historically grepped for, so
// existing automation keeps working.
func (k ErrorKind) ExitCode() int {
	switch k {
	case KindNameResolution:
		return 6
	case KindConnection:
		return 7
	case KindStatus:
		return 22
	default:
		return 1
	}
}

// LookupError is a failed lookup of a single key at a single scope.
type LookupError struct {
	Kind   ErrorKind
	Scope  Scope
	Key    string
	Status int // HTTP status for KindStatus, zero otherwise
	Err    error
}

func (e *LookupError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("metadata lookup %s/%s: %s (status %d)", e.Scope, e.Key, e.Kind, e.Status)
	}
	return fmt.Sprintf("metadata lookup %s/%s: %s: %v", e.Scope, e.Key, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit status for a resolution failure. Errors
// that are not lookup failures map to a generic failure code of 1.
func ExitCode(err error) int {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind.ExitCode()
	}
	return 1
}

// classify derives the error kind from a transport error returned by
// the HTTP client.
func classify(err error) ErrorKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindNameResolution
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return KindConnection
	}

	return KindTransport
}
