package relay

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal"
)

// Fetcher reads the events of one calendar. It never fails: provider errors
// yield no events and records that cannot be mapped are dropped.
type Fetcher struct {
	mux    internal.Mux
	cal    *internal.Calendar
	logger *zap.Logger

	// Location renders event times; nil keeps the provider offsets.
	Location *time.Location
	// Timeout bounds the provider call; zero means no bound.
	Timeout time.Duration
}

func NewFetcher(mux internal.Mux, cal *internal.Calendar, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		mux:    mux,
		cal:    cal,
		logger: internal.OrNop(logger).With(zap.Stringer("calendar", cal)),
	}
}

func (f Fetcher) Fetch(ctx context.Context, rng internal.Range) []*internal.Event {
	provider, err := f.mux.Get(f.cal.Account.Platform)
	if err != nil {
		f.logger.Error("Unable to load provider", zap.Error(err))
		return nil
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	raws, err := provider.Events(ctx, f.cal, rng)
	if err != nil {
		f.logger.Error("Error fetching events", zap.Error(err), zap.Stringer("range", rng))
		return nil
	}

	events := make([]*internal.Event, 0, len(raws))
	for _, raw := range raws {
		e, err := internal.MapEvent(raw, f.Location)
		if err != nil {
			f.logger.Warn("Skipping event", zap.String("summary", summary(raw)), zap.Error(err))
			continue
		}
		events = append(events, e)
	}
	f.logger.Debug("Events fetched", zap.Int("received", len(raws)), zap.Int("valid", len(events)))
	return events
}

func summary(raw *internal.RawEvent) string {
	if raw == nil {
		return ""
	}
	return raw.Summary
}
