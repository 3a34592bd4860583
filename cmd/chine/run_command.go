package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chine/internal/logging"
	"chine/internal/notify"
	"chine/internal/seen"
	"chine/internal/vinted"
	"chine/internal/watcher"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the watch loop",
		Long:  "Polls every configured search, notifies matches over Telegram, and keeps running until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, ctx)
		},
	}
}

func runWatch(cmd *cobra.Command, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if err := cfg.EnsureStateDir(); err != nil {
		return fmt.Errorf("ensure state directory: %w", err)
	}

	store := seen.NewStore(cfg.SeenPath(), logger)

	client, err := vinted.New(cfg)
	if err != nil {
		return fmt.Errorf("create catalog client: %w", err)
	}

	notifier := notify.NewService(cfg, logger)

	w, err := watcher.New(cfg, client, notifier, store, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Run(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("chine shutting down")
	return nil
}
