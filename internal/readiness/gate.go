// Package readiness gates the customization script on the availability
// of the script-runner tooling.
//
// On distributions that provision the tooling asynchronously after boot
// (a confined snap package on Ubuntu), the gate polls PATH for the tool
// with a fixed sleep before each check. Everywhere else the tooling is
// part of the base image and readiness is granted immediately.
package readiness

import (
	"log"
	"os/exec"
	"time"
)

const (
	defaultChecks   = 11
	defaultInterval = 5 * time.Second
)

// confinedToolchainOS lists OS identifiers (os-release ID values) where
// the runner tool appears in PATH only some time after boot.
var confinedToolchainOS = map[string]bool{
	"ubuntu": true,
}

// PollsFor reports whether the gate polls on the given OS identifier.
func PollsFor(osID string) bool {
	return confinedToolchainOS[osID]
}

// Gate polls for the runner tool. The zero value is not usable; create
// gates with NewGate.
type Gate struct {
	tool     string
	checks   int
	interval time.Duration

	// injectable for tests
	lookPath func(string) (string, error)
	sleep    func(time.Duration)
	logf     func(string, ...any)
}

// NewGate creates a gate waiting for the given tool with production
// defaults: 11 checks, 5 seconds apart, looked up in PATH.
func NewGate(tool string) *Gate {
	return &Gate{
		tool:     tool,
		checks:   defaultChecks,
		interval: defaultInterval,
		lookPath: exec.LookPath,
		sleep:    time.Sleep,
		logf:     log.Printf,
	}
}

// Await blocks until the runner tool is usable and returns the granted
// readiness. On a polling OS it sleeps before each check and stops at
// the first hit; after the last failed check it logs a diagnostic and
// returns false. Readiness false is not fatal — the caller skips the
// customization script and proceeds to shutdown.
func (g *Gate) Await(osID string) bool {
	if !PollsFor(osID) {
		return true
	}

	for i := 1; i <= g.checks; i++ {
		g.sleep(g.interval)
		if _, err := g.lookPath(g.tool); err == nil {
			return true
		}
	}

	g.logf("%s did not become available after %d checks; skipping the customization script", g.tool, g.checks)
	return false
}
