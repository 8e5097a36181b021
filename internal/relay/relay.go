// Package relay fetches the events of a calendar, formats them and delivers
// the result as a single message.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal"
)

var ErrDispatch = errors.New("unable to dispatch events")

type State int

const (
	Fetching State = iota
	Formatting
	Dispatching
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Formatting:
		return "formatting"
	case Dispatching:
		return "dispatching"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Report describes how a run ended.
type Report struct {
	RunID     string
	Range     internal.Range
	State     State
	Fetched   int
	Formatted int
	Skipped   int
	Sent      bool
}

type (
	EventFetcher interface {
		Fetch(context.Context, internal.Range) []*internal.Event
	}
	EventFormatter interface {
		Format(*internal.Event) (string, error)
	}
	MessageDispatcher interface {
		Dispatch(context.Context, []string) (bool, error)
	}
)

type Relay struct {
	fetcher    EventFetcher
	formatter  EventFormatter
	dispatcher MessageDispatcher
	logger     *zap.Logger

	// Now returns the instant ranges are resolved against.
	Now func() time.Time
}

func New(fetcher EventFetcher, formatter EventFormatter, dispatcher MessageDispatcher, logger *zap.Logger) *Relay {
	return &Relay{
		fetcher:    fetcher,
		formatter:  formatter,
		dispatcher: dispatcher,
		logger:     internal.OrNop(logger),
		Now:        time.Now,
	}
}

// Run relays the events of the range selected by rt. The error is non-nil
// only when the run ends in Failed.
func (r Relay) Run(ctx context.Context, rt internal.RangeType) (Report, error) {
	report := Report{RunID: uuid.NewString(), State: Fetching}
	logger := r.logger.With(zap.String("run_id", report.RunID), zap.Stringer("range_type", rt))

	fail := func(err error) (Report, error) {
		report.State = Failed
		logger.Error("Run failed", zap.Error(err))
		return report, err
	}

	rng, err := internal.ResolveRange(r.Now(), rt)
	if err != nil {
		return fail(err)
	}
	report.Range = rng
	logger.Info("Fetching events", zap.Stringer("range", rng))

	events := r.fetcher.Fetch(ctx, rng)
	report.Fetched = len(events)
	if len(events) == 0 {
		report.State = Done
		logger.Warn("No events found, nothing to do")
		return report, nil
	}

	report.State = Formatting
	messages := make([]string, 0, len(events))
	for _, e := range events {
		msg, err := r.formatter.Format(e)
		if err != nil {
			report.Skipped++
			logger.Error("Error formatting event", zap.Stringer("event", e), zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}
	report.Formatted = len(messages)
	if report.Skipped > 0 {
		logger.Warn("Some events couldn't be formatted", zap.Int("skipped", report.Skipped), zap.Int("formatted", report.Formatted))
	}

	report.State = Dispatching
	report.Sent, err = r.dispatcher.Dispatch(ctx, messages)
	if err != nil {
		return fail(err)
	}

	report.State = Done
	logger.Info("Run complete", zap.Int("events", report.Formatted), zap.Bool("sent", report.Sent))
	return report, nil
}
