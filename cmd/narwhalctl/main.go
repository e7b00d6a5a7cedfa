// Command narwhalctl drives narwhal locks from the shell: acquire a read or
// write lock, release whatever the calling identity holds, or print the
// build version. It is a thin wrapper, suitable for scripting around a
// shared command or for operators inspecting a lock directory by hand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "narwhalctl",
		Short:         "Acquire and release narwhal locks from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindGlobalFlags(cmd)
	cmd.AddCommand(
		newAcquireReadCommand(),
		newAcquireWriteCommand(),
		newReleaseCommand(),
		newVersionCommand(),
	)
	return cmd
}
