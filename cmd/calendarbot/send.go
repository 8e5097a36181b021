package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal/telegram"
)

func newSendCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Fetch the events and send them to Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, opts)
		},
	}
}

func runSend(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := errors.Join(cfg.Validate(), cfg.ValidateSink()); err != nil {
		logger.Error("Invalid configuration", zap.Error(err))
		return logged{err}
	}

	bot, err := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
	if err != nil {
		return err
	}
	bot.ParseMode = cfg.Telegram.ParseMode
	bot.DisablePreview = cfg.Telegram.DisablePreview

	r, err := newRelay(cfg, bot, logger)
	if err != nil {
		logger.Error("Unable to set up", zap.Error(err))
		return logged{err}
	}
	if _, err := r.Run(cmd.Context(), cfg.RangeType); err != nil {
		return logged{err}
	}
	return nil
}
