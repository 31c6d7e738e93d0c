// Package main is the entry point for the imageboot CLI.
//
// imageboot is the in-VM half of a custom-image build: launched as the
// startup command of a freshly created VM, it resolves its
// configuration from the instance metadata service, waits for the
// script-runner tooling, downloads and runs the user's customization
// script from object storage, scrubs transient credentials, and powers
// the machine off so the build workflow can snapshot the disk.
//
// Commands: run, metadata, check, version.
package main

import (
	"fmt"
	"os"

	"github.com/imamik/imageboot/cmd/imageboot/commands"
	"github.com/imamik/imageboot/internal/metadata"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// Metadata lookup failures carry their transport error code;
		// everything else exits 1.
		os.Exit(metadata.ExitCode(err))
	}
}
