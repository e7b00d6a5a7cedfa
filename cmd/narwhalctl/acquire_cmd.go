package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/narwhal"
)

func newAcquireReadCommand() *cobra.Command {
	return newAcquireCommand("acquire-read", "Acquire a shared read lock", narwhal.Read)
}

func newAcquireWriteCommand() *cobra.Command {
	return newAcquireCommand("acquire-write", "Acquire an exclusive write lock", narwhal.Write)
}

func newAcquireCommand(use, short string, mode narwhal.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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

			ctx := cmd.Context()
			var opErr error
			switch mode {
			case narwhal.Read:
				opErr = cli.AcquireRead(ctx)
			case narwhal.Write:
				opErr = cli.AcquireWrite(ctx)
			}
			if opErr != nil {
				if narwhal.IsTimedOut(opErr) {
					return fmt.Errorf("%s: gave up after %s waiting for the %s lock on %s",
						use, cfg.Timeout, mode, cfg.LockDir)
				}
				return opErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s lock acquired on %s\n", mode, cfg.LockDir)
			return nil
		},
	}
}
