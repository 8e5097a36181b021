package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/calendar"
	"github.com/guilherme-santos/calendarbot/calendar/google"
	"github.com/guilherme-santos/calendarbot/calendar/ics"
	"github.com/guilherme-santos/calendarbot/internal"
	"github.com/guilherme-santos/calendarbot/internal/config"
	"github.com/guilherme-santos/calendarbot/internal/format"
	"github.com/guilherme-santos/calendarbot/internal/relay"
	"github.com/guilherme-santos/calendarbot/internal/telegram"
)

// load assembles the configuration and the logger. Flags win over the
// environment, which wins over the config file.
func (o *options) load() (*config.Config, *zap.Logger, error) {
	if o.envFile != "" {
		err := godotenv.Load(o.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("loading %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	if o.rangeType != "" {
		cfg.RangeType = o.rangeType
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newMux(logger *zap.Logger) *calendar.Mux {
	mux := calendar.NewMux()
	mux.Register(config.PlatformGoogle, google.NewClient(logger))
	mux.Register(config.PlatformICS, ics.NewClient(logger))
	return mux
}

func newRelay(cfg *config.Config, sender relay.Sender, logger *zap.Logger) (*relay.Relay, error) {
	auth, err := cfg.CalendarAuth()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	cal := &internal.Calendar{
		ProviderID: cfg.Calendar.ID,
		Account: internal.Account{
			Platform: cfg.Calendar.Platform,
			Auth:     auth,
		},
	}
	fetcher := relay.NewFetcher(newMux(logger), cal, logger)
	fetcher.Location = loc
	fetcher.Timeout = cfg.Timeout

	formatter, err := format.New()
	if err != nil {
		return nil, err
	}
	if cfg.Telegram.ParseMode == telegram.DefaultParseMode {
		formatter.Escape = format.EscapeMarkdown
	}

	dispatcher := relay.NewDispatcher(sender, logger)
	dispatcher.Timeout = cfg.Timeout

	r := relay.New(fetcher, formatter, dispatcher, logger)
	r.Now = func() time.Time {
		if loc != nil {
			return time.Now().In(loc)
		}
		return time.Now().UTC()
	}
	return r, nil
}
