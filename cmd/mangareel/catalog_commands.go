package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mangareel/internal/catalog"
	"mangareel/internal/ledger"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog utilities",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogValidateCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries and their rotation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			items, err := catalog.Load(cfg.Paths.CatalogPath)
			if err != nil {
				return err
			}
			used, err := ledger.Load(cfg.Paths.LedgerPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderCatalogTable(items, used, isTerminal(os.Stdout)))
			fmt.Fprintf(out, "%d entries, %d used\n", len(items), used.Len())
			return nil
		},
	}
}

func newCatalogValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			items, err := catalog.Load(cfg.Paths.CatalogPath)
			if err != nil {
				return err
			}
			if err := catalog.Validate(items); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog valid: %d entries\n", len(items))
			if len(items) < cfg.Video.BatchSize {
				fmt.Fprintf(out, "Warning: catalog has fewer entries than batch_size (%d < %d); runs will fail\n",
					len(items), cfg.Video.BatchSize)
			}
			return nil
		},
	}
}
