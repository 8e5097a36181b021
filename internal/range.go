package internal

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const DateFormat = "2006-01-02"

var ErrInvalidRangeType = errors.New("invalid range type")

// RangeType selects the window of events to relay.
type RangeType string

var _ pflag.Value = (*RangeType)(nil)

const (
	RangeWeek  RangeType = "week"
	RangeMonth RangeType = "month"

	DefaultRangeType = RangeMonth
)

func ParseRangeType(v string) (RangeType, error) {
	switch rt := RangeType(v); rt {
	case RangeWeek, RangeMonth:
		return rt, nil
	}
	return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidRangeType, v, RangeWeek, RangeMonth)
}

func (rt *RangeType) Set(v string) error {
	parsed, err := ParseRangeType(v)
	if err == nil {
		*rt = parsed
	}
	return err
}

func (rt RangeType) String() string {
	return string(rt)
}

func (rt RangeType) Type() string {
	return "rangeType"
}

// Range is a closed interval: End is the last microsecond of its final day.
type Range struct {
	Start time.Time
	End   time.Time
}

// ResolveRange returns the current week or month containing now. Boundaries
// are computed in now's location.
func ResolveRange(now time.Time, rt RangeType) (Range, error) {
	today := startOfDay(now)

	var start time.Time
	switch rt {
	case RangeMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Range{
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Microsecond),
		}, nil
	case RangeWeek:
		// time.Weekday starts on Sunday, weeks here start on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		start = today.AddDate(0, 0, -offset)
		return Range{
			Start: start,
			End:   start.AddDate(0, 0, 7).Add(-time.Microsecond),
		}, nil
	}
	_, err := ParseRangeType(string(rt))
	return Range{}, err
}

// TimeMin is the range start as the provider expects it.
func (r Range) TimeMin() string {
	return r.Start.UTC().Format(time.RFC3339Nano)
}

// TimeMax is the range end as the provider expects it.
func (r Range) TimeMax() string {
	return r.End.UTC().Format(time.RFC3339Nano)
}

func (r Range) String() string {
	return r.Start.Format(DateFormat) + ".." + r.End.Format(DateFormat)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
