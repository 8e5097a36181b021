// Package ics reads events from a public iCalendar feed.
package ics

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/apognu/gocal"
	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal"
)

const defaultTimeout = 15 * time.Second

// gocal leaves escaped line breaks in text values.
var lineBreak = strings.NewReplacer(`\n`, "\n", `\N`, "\n")

// Client downloads the feed found at the calendar's ProviderID, which must be
// a URL.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: internal.OrNop(logger),
	}
}

// WithHTTPClient replaces the client used to download feeds.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c Client) Events(ctx context.Context, cal *internal.Calendar, rng internal.Range) ([]*internal.RawEvent, error) {
	logger := c.logger.With(zap.Stringer("calendar", cal))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cal.ProviderID, nil)
	if err != nil {
		return nil, fmt.Errorf("ics: %v", err)
	}
	logger.Debug("downloading feed")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics: downloading feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics: downloading feed: unexpected status %s", resp.Status)
	}

	start, end := rng.Start, rng.End
	parser := gocal.NewParser(resp.Body)
	parser.Start, parser.End = &start, &end
	parser.Strict.Mode = gocal.StrictModeFailEvent
	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("ics: parsing feed: %w", err)
	}

	items := parser.Events
	sort.SliceStable(items, func(i, j int) bool {
		return startOf(items[i]).Before(startOf(items[j]))
	})

	events := make([]*internal.RawEvent, 0, len(items))
	for _, item := range items {
		if item.Status == "CANCELLED" {
			continue
		}
		events = append(events, newRawEvent(item))
	}
	logger.Debug("feed parsed", zap.Int("count", len(events)))
	return events, nil
}

func newRawEvent(e gocal.Event) *internal.RawEvent {
	return &internal.RawEvent{
		Summary:     lineBreak.Replace(e.Summary),
		Description: lineBreak.Replace(e.Description),
		Location:    lineBreak.Replace(e.Location),
		Start:       newEventTime(e.Start),
		End:         newEventTime(e.End),
	}
}

func newEventTime(t *time.Time) internal.EventTime {
	if t == nil {
		return internal.EventTime{}
	}
	return internal.EventTime{DateTime: t.Format(time.RFC3339)}
}

func startOf(e gocal.Event) time.Time {
	if e.Start == nil {
		return time.Time{}
	}
	return *e.Start
}
