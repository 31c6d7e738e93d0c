// Package retry provides bounded fixed-interval retry for operations
// that can fail transiently.
package retry
