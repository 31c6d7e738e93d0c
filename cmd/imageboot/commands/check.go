package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/imageboot/cmd/imageboot/handlers"
)

// Check returns the readiness probe command.
//
// It reports whether the script-runner tooling is usable right now,
// without the polling the bootstrap itself performs. Useful when a
// build is stuck and an operator is poking at the VM.
func Check() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the script-runner tooling is available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Check(cmd.OutOrStdout())
		},
	}
}
