// Package metadata resolves configuration attributes from the
// two-tier instance metadata service.
//
// A lookup is tried at instance scope first and falls back to project
// scope. The whole instance-then-project sequence is retried with a
// fixed interval while the failure is transient (name resolution or
// connection errors); any other failure is fatal and short-circuits
// resolution.
package metadata
