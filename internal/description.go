package internal

import (
	"strings"
)

const (
	TicketsMarker = "Tickets:"
	WebsiteMarker = "Website:"
)

// Description is an event description split into its free text and the
// optional fields found on marker lines.
type Description struct {
	Body    string
	Tickets string
	Website string
}

// ParseDescription removes every line starting with a known marker from s and
// keeps the first non-empty value found for each marker.
func ParseDescription(s string) Description {
	var (
		d    Description
		body []string
	)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, TicketsMarker):
			if d.Tickets == "" {
				d.Tickets = strings.TrimSpace(strings.TrimPrefix(trimmed, TicketsMarker))
			}
		case strings.HasPrefix(trimmed, WebsiteMarker):
			if d.Website == "" {
				d.Website = strings.TrimSpace(strings.TrimPrefix(trimmed, WebsiteMarker))
			}
		default:
			body = append(body, line)
		}
	}
	d.Body = strings.TrimSpace(strings.Join(body, "\n"))
	return d
}
