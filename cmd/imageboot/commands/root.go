// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the imageboot CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "imageboot",
		Short:         "Bootstrap a VM during custom-image build",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Run())
	cmd.AddCommand(Metadata())
	cmd.AddCommand(Check())
	cmd.AddCommand(Version())

	return cmd
}
