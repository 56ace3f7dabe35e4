package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mangareel/internal/ledger"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Rotation ledger utilities",
	}

	ledgerCmd.AddCommand(newLedgerShowCommand(ctx))
	ledgerCmd.AddCommand(newLedgerResetCommand(ctx))

	return ledgerCmd
}

func newLedgerShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the ids consumed in the current rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			used, err := ledger.Load(cfg.Paths.LedgerPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if used.Len() == 0 {
				fmt.Fprintln(out, "Ledger is empty; a fresh rotation starts on the next run")
				return nil
			}
			for _, id := range used.IDs() {
				fmt.Fprintln(out, id)
			}
			fmt.Fprintf(out, "%d ids used\n", used.Len())
			return nil
		},
	}
}

func newLedgerResetCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the ledger and restart the rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("ledger reset discards rotation state; pass --force to confirm")
			}

			guard, err := ledger.Acquire(cfg.Paths.LedgerPath)
			if err != nil {
				return err
			}
			defer guard.Release()

			if err := os.Remove(cfg.Paths.LedgerPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove ledger: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ledger cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm clearing the rotation state")
	return cmd
}
