package bootstrap

import (
	"os/exec"
	"time"
)

// Power turns the machine off.
type Power interface {
	Off() error
}

// SystemPower powers off through the init system.
type SystemPower struct{}

// Off issues an immediate halt.
func (SystemPower) Off() error {
	return exec.Command("shutdown", "-h", "now").Run()
}

// Scheduler is the terminal stage: it drains buffered output to the
// serial console, then powers the machine off. Every run path ends
// here exactly once.
type Scheduler struct {
	Power Power

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
	Logf  func(string, ...any)
}

// DrainAndShutdown sleeps for the drain delay and powers off. A power
// failure is only logged: there is nothing left to do in that case but
// leave the machine for the build workflow's timeout to reap.
func (s *Scheduler) DrainAndShutdown(drain time.Duration) {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	logf(s.Logf, "shutting down in %v to let logs flush", drain)
	sleep(drain)

	if err := s.Power.Off(); err != nil {
		logf(s.Logf, "failed to power off: %v", err)
	}
}
