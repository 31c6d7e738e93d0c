package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/imageboot/cmd/imageboot/handlers"
)

// Run returns the command executing the bootstrap state machine.
//
// This is the VM's startup command during a custom-image build. It
// never returns an error under normal operation: failures surface as
// BuildFailed: markers on the serial console, and the terminal action
// is powering the machine off.
//
// Flags:
//
//	--config: optional YAML settings file baked into the image
func Run() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the image customization bootstrap and power off",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to an optional settings file")

	return cmd
}
