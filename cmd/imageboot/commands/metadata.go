package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/imageboot/cmd/imageboot/handlers"
)

// Metadata returns the standalone metadata resolution command.
//
// It prints the resolved value to standard output and exits zero on
// success. On failure the process exits with the classified transport
// error code of the lookup, so callers can distinguish connection
// problems from missing keys.
func Metadata() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <key>",
		Short: "Resolve a metadata key with instance-to-project fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := handlers.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
