package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/calendarbot/internal"
)

const (
	defaultSleep      = 5 * time.Second
	defaultMaxRetries = 3
)

// Client reads events from Google Calendar. The credentials are the service
// account JSON found in the calendar account's Auth.
type Client struct {
	opts   []option.ClientOption
	logger *zap.Logger

	RetrySleep time.Duration
	MaxRetries int
}

// NewClient returns a Client; opts are passed to every calendar service it
// creates.
func NewClient(logger *zap.Logger, opts ...option.ClientOption) *Client {
	return &Client{
		opts:       opts,
		logger:     internal.OrNop(logger),
		RetrySleep: defaultSleep,
		MaxRetries: defaultMaxRetries,
	}
}

func (c Client) Events(ctx context.Context, cal *internal.Calendar, rng internal.Range) ([]*internal.RawEvent, error) {
	logger := c.logger.With(zap.Stringer("calendar", cal))

	svc, err := c.calendarSvc(ctx, cal)
	if err != nil {
		return nil, err
	}
	call := svc.Events.
		List(cal.ProviderID).
		Context(ctx).
		TimeMin(rng.TimeMin()).
		TimeMax(rng.TimeMax()).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime")

	logger.Debug("checking for events", zap.String("time_min", rng.TimeMin()), zap.String("time_max", rng.TimeMax()))

	var (
		events        []*internal.RawEvent
		nextPageToken string
		retries       int
	)
	for {
		res, err := call.PageToken(nextPageToken).Do()
		if err != nil {
			if shouldRetry(err) && retries < c.MaxRetries {
				retries++
				logger.Warn("rate limit exceeded, retrying", zap.Int("attempt", retries))
				if err := sleep(ctx, c.RetrySleep); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("google: listing events of %s: %w", cal, err)
		}

		for _, item := range res.Items {
			if item.Status == "cancelled" {
				continue
			}
			events = append(events, newRawEvent(item))
		}
		nextPageToken = res.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
	if len(events) == 0 {
		logger.Debug("no events in range")
	}
	return events, nil
}

func (c Client) calendarSvc(ctx context.Context, cal *internal.Calendar) (*calendar.Service, error) {
	opts := append([]option.ClientOption(nil), c.opts...)
	if cal.Account.Auth != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(cal.Account.Auth), calendar.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("google: parsing credentials: %v", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %v", err)
	}
	return svc, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded") || errIsReason(err, "userRateLimitExceeded")
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
