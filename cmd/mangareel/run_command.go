package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mangareel/internal/runner"
)

const ansiGreen = "\x1b[32m"
const ansiReset = "\x1b[0m"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Produce today's recommendation video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			date := strings.TrimSpace(dateFlag)
			if date != "" {
				if _, err := time.Parse("2006-01-02", date); err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
			}

			run, err := runner.New(cfg, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := run.Run(runCtx, date, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.DryRun {
				fmt.Fprintf(out, "Dry run for %s: would render %s\n", result.Date, strings.Join(result.ItemIDs, ", "))
				if result.Reset {
					fmt.Fprintln(out, "Catalog exhausted; the rotation would restart")
				}
				return nil
			}

			line := fmt.Sprintf("Produced %s (%d items, delivered: %s)", result.VideoPath, len(result.ItemIDs), yesNo(result.Delivered))
			if isTerminal(os.Stdout) {
				line = ansiGreen + line + ansiReset
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Run date in YYYY-MM-DD form (defaults to today)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the selection without rendering or committing")
	return cmd
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
