package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal/relay"
)

func newPreviewCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Fetch the events and print the message instead of sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := cfg.Validate(); err != nil {
				logger.Error("Invalid configuration", zap.Error(err))
				return logged{err}
			}

			r, err := newRelay(cfg, relay.NewWriterSender(cmd.OutOrStdout()), logger)
			if err != nil {
				logger.Error("Unable to set up", zap.Error(err))
				return logged{err}
			}
			if _, err := r.Run(cmd.Context(), cfg.RangeType); err != nil {
				return logged{err}
			}
			return nil
		},
	}
}
