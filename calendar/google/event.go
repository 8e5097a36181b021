package google

import (
	"regexp"

	"google.golang.org/api/calendar/v3"

	"github.com/guilherme-santos/calendarbot/internal"
)

// Descriptions edited on the web UI use HTML line breaks.
var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

func newRawEvent(event *calendar.Event) *internal.RawEvent {
	return &internal.RawEvent{
		Summary:     event.Summary,
		Description: lineBreak.ReplaceAllString(event.Description, "\n"),
		Location:    event.Location,
		Start:       newEventTime(event.Start),
		End:         newEventTime(event.End),
	}
}

func newEventTime(t *calendar.EventDateTime) internal.EventTime {
	if t == nil {
		return internal.EventTime{}
	}
	return internal.EventTime{
		DateTime: t.DateTime,
		Date:     t.Date,
	}
}
