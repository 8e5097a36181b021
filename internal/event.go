package internal

import (
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing required field")

// FieldError reports the first required field an event was built without.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

// EventParams are the values an Event is built from.
type EventParams struct {
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Tickets     string
	Website     string
}

// Event is a calendar entry ready to be formatted. Times are already
// rendered for display. Use NewEvent to build one.
type Event struct {
	title       string
	description string
	date        string
	startTime   string
	endTime     string
	location    string
	tickets     string
	website     string
}

// NewEvent validates p and extracts the optional fields embedded in the
// description. Fields already set in p are kept when the description does not
// carry them.
func NewEvent(p EventParams) (*Event, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"date", p.Date},
		{"start time", p.StartTime},
		{"end time", p.EndTime},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, &FieldError{Field: f.name}
		}
	}

	desc := ParseDescription(p.Description)
	e := &Event{
		title:       p.Title,
		description: desc.Body,
		date:        p.Date,
		startTime:   p.StartTime,
		endTime:     p.EndTime,
		location:    p.Location,
		tickets:     p.Tickets,
		website:     p.Website,
	}
	if desc.Tickets != "" {
		e.tickets = desc.Tickets
	}
	if desc.Website != "" {
		e.website = desc.Website
	}
	return e, nil
}

func (e Event) Title() string       { return e.title }
func (e Event) Description() string { return e.description }
func (e Event) Date() string        { return e.date }
func (e Event) StartTime() string   { return e.startTime }
func (e Event) EndTime() string     { return e.endTime }
func (e Event) Location() string    { return e.location }
func (e Event) Tickets() string     { return e.tickets }
func (e Event) Website() string     { return e.website }

// Params returns the values the event holds, with the description already
// stripped of its markers.
func (e Event) Params() EventParams {
	return EventParams{
		Title:       e.title,
		Description: e.description,
		Date:        e.date,
		StartTime:   e.startTime,
		EndTime:     e.endTime,
		Location:    e.location,
		Tickets:     e.tickets,
		Website:     e.website,
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%q on %s %s", e.title, e.date, e.startTime)
}
