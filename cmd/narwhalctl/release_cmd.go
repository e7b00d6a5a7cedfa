package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/narwhal"
)

func newReleaseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Release whichever lock the calling identity holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cli, err := narwhal.NewClient(cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			if err := cli.Release(cmd.Context()); err != nil {
				if narwhal.IsAlreadyLocked(err) {
					return fmt.Errorf("release: no lock held on %s by this host/pid", cfg.LockDir)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lock released on %s\n", cfg.LockDir)
			return nil
		},
	}
}
