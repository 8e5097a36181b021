package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/calendarbot/internal"
)

// logged marks errors that were already written to the log.
type logged struct {
	error
}

func (l logged) Unwrap() error {
	return l.error
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var l logged
	if !errors.As(err, &l) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return 1
}

type options struct {
	configFile string
	envFile    string
	verbose    bool
	rangeType  internal.RangeType
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "calendarbot",
		Short: "Relay calendar events to a Telegram chat",
		Long: `calendarbot fetches the events of the current week or month from a calendar
and sends them, formatted, as a single Telegram message.

Running it without a command is the same as "calendarbot send".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, &opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "file with environment variables to load, ignored when missing")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flags.Var(&opts.rangeType, "range-type", `events to fetch, "week" or "month" (default "month")`)

	cmd.AddCommand(
		newSendCommand(&opts),
		newPreviewCommand(&opts),
	)
	return cmd
}
