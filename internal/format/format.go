// Package format renders events into chat messages.
package format

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/guilherme-santos/calendarbot/internal"
)

//go:embed event.tmpl
var eventTemplate string

// Formatter renders events with a template parsed once, in New.
type Formatter struct {
	tmpl *template.Template

	// Escape, when set, is applied to the free text of an event: title,
	// location and description.
	Escape func(string) string
}

var markdown = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// EscapeMarkdown escapes the characters Telegram's Markdown parse mode reads
// as entity delimiters.
func EscapeMarkdown(s string) string {
	return markdown.Replace(s)
}

func New() (*Formatter, error) {
	return NewWithTemplate(eventTemplate)
}

// NewWithTemplate uses text instead of the built-in layout. The template is
// executed with a View.
func NewWithTemplate(text string) (*Formatter, error) {
	tmpl, err := template.New("event").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("format: parsing template: %w", err)
	}
	return &Formatter{tmpl: tmpl}, nil
}

// View is what the template sees.
type View struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Location    string
	Description string
	Trailer     string
}

func (f Formatter) Format(e *internal.Event) (string, error) {
	if e == nil {
		return "", errors.New("format: nil event")
	}

	escape := f.Escape
	if escape == nil {
		escape = func(s string) string { return s }
	}

	var b strings.Builder
	err := f.tmpl.Execute(&b, View{
		Title:       escape(e.Title()),
		Date:        e.Date(),
		StartTime:   e.StartTime(),
		EndTime:     e.EndTime(),
		Location:    escape(e.Location()),
		Description: escape(e.Description()),
		Trailer:     Trailer(e),
	})
	if err != nil {
		return "", fmt.Errorf("format: %s: %w", e, err)
	}
	return strings.TrimRight(b.String(), " \t\r\n"), nil
}

// Trailer lists the optional links of e, tickets first, or returns "" when it
// has none.
func Trailer(e *internal.Event) string {
	var links []string
	if v := e.Tickets(); v != "" {
		links = append(links, link("Tickets", v))
	}
	if v := e.Website(); v != "" {
		links = append(links, link("Website", v))
	}
	return strings.Join(links, " | ")
}

func link(label, url string) string {
	return "[" + label + "](" + url + ")"
}
