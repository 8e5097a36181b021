package internal

import (
	"errors"
	"fmt"
	"time"
)

var errNoTime = errors.New("neither dateTime nor date set")

// MapEvent turns a provider record into an Event. Times are rendered in loc
// when it is not nil, otherwise in the offset they were given with.
func MapEvent(raw *RawEvent, loc *time.Location) (*Event, error) {
	if raw == nil {
		return nil, errors.New("nil event")
	}
	startsAt, err := ParseEventTime(raw.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	endsAt, err := ParseEventTime(raw.End, loc)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	return NewEvent(EventParams{
		Title:       raw.Summary,
		Description: raw.Description,
		Location:    raw.Location,
		Date:        DisplayDate(startsAt),
		StartTime:   DisplayClock(startsAt),
		EndTime:     DisplayClock(endsAt),
	})
}

// ParseEventTime accepts RFC3339 date-times ("Z" or numeric offset) and
// all-day dates. All-day dates are midnight in loc, or UTC when loc is nil.
func ParseEventTime(t EventTime, loc *time.Location) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, errNoTime
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		if loc != nil {
			parsed = parsed.In(loc)
		}
		return parsed, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, t.Date, loc)
}
