package internal

import (
	"context"
)

type Mux interface {
	Get(platform string) (Provider, error)
}

// Provider lists the single (recurrence expanded) events of a calendar that
// fall within a range, ordered by start time.
type Provider interface {
	Events(_ context.Context, _ *Calendar, _ Range) ([]*RawEvent, error)
}

// RawEvent is an event as the provider returns it, before any validation.
type RawEvent struct {
	Summary     string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
}

// EventTime carries either a date-time (RFC3339, with "Z" or an offset) or,
// for all-day events, a date.
type EventTime struct {
	DateTime string
	Date     string
}

func (t EventTime) IsZero() bool {
	return t.DateTime == "" && t.Date == ""
}
