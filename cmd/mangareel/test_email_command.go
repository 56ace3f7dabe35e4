package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mangareel/internal/delivery"
)

func newTestEmailCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send a test email to verify SMTP settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			svc := delivery.NewService(cfg, logger)
			sent, err := svc.SendTest(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sent {
				fmt.Fprintf(out, "Test email sent to %s\n", cfg.Email.To)
			} else {
				fmt.Fprintln(out, "Email delivery is not configured; set [email] in the config file")
			}
			return nil
		},
	}
}
