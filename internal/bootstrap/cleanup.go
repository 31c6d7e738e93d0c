package bootstrap

import "os"

// Cleaner scrubs transient state before the disk is snapshotted:
// cached storage credentials, the downloaded bundle, and the
// bootstrap's own scripts. Nothing here may fail the run.
type Cleaner struct {
	// Paths are removed recursively, in order.
	Paths []string

	// Remove defaults to os.RemoveAll.
	Remove func(string) error
	Logf   func(string, ...any)
}

// Clean removes every configured path, best effort. Failures are
// logged and skipped; credentials that survive here end up baked into
// the image, so each path gets its own attempt regardless of earlier
// errors.
func (c *Cleaner) Clean() {
	remove := c.Remove
	if remove == nil {
		remove = os.RemoveAll
	}

	for _, path := range c.Paths {
		if err := remove(path); err != nil {
			logf(c.Logf, "cleanup: failed to remove %s: %v", path, err)
		}
	}
}
