package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chine/internal/logging"
	"chine/internal/notify"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			notifier := notify.NewService(cfg, logging.NewNop())
			if err := notifier.Test(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}

			out := cmd.OutOrStdout()
			if cfg.TelegramConfigured() {
				fmt.Fprintln(out, "Test notification sent")
			} else {
				fmt.Fprintln(out, "Telegram is not configured; nothing was sent")
			}
			return nil
		},
	}
}
