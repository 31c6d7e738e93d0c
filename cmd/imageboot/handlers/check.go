package handlers

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/imamik/imageboot/internal/config"
	"github.com/imamik/imageboot/internal/readiness"
)

// lookPath finds a binary in PATH. Replaced in tests.
var lookPath = exec.LookPath

// Check reports whether the script-runner tooling is usable right now.
// It performs a single check with no polling and returns an error when
// the tool is missing, so the exit status is scriptable.
func Check(out io.Writer) error {
	cfg := config.Load()
	osID := detectOS()

	path, err := lookPath(cfg.RunnerTool)
	if err != nil {
		fmt.Fprintf(out, "%s: not found in PATH\n", cfg.RunnerTool)
		if readiness.PollsFor(osID) {
			fmt.Fprintf(out, "note: on %s the tool is provisioned after boot; `imageboot run` polls for it\n", osID)
		}
		return fmt.Errorf("%s is not available", cfg.RunnerTool)
	}

	fmt.Fprintf(out, "%s: %s\n", cfg.RunnerTool, path)
	return nil
}
