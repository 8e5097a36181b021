package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/calendarbot/internal"
)

var testCal = &internal.Calendar{
	ProviderID: "primary",
	Account:    internal.Account{Platform: "google"},
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(nil, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	c.RetrySleep = time.Millisecond
	return c
}

func testRange(t *testing.T) internal.Range {
	t.Helper()
	rng, err := internal.ResolveRange(time.Date(2023, 9, 19, 12, 0, 0, 0, time.UTC), internal.RangeMonth)
	require.NoError(t, err)
	return rng
}

const twoEvents = `{
  "items": [
    {
      "summary": "Test Event 1",
      "location": "A Place",
      "description": "Description 1",
      "start": {"dateTime": "2023-09-19T10:00:00+01:00"},
      "end": {"dateTime": "2023-09-19T11:00:00+01:00"}
    },
    {
      "summary": "Test Event 2",
      "location": "A Place",
      "description": "Description 2<br>Tickets: http://t.example",
      "start": {"dateTime": "2023-09-20T00:00:00+01:00"},
      "end": {"dateTime": "2023-09-20T01:00:00+01:00"}
    }
  ]
}`

func TestEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "2023-09-01T00:00:00Z", q.Get("timeMin"))
		assert.Equal(t, "2023-09-30T23:59:59.999999Z", q.Get("timeMax"))
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "startTime", q.Get("orderBy"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(twoEvents))
	})

	events, err := c.Events(context.Background(), testCal, testRange(t))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, &internal.RawEvent{
		Summary:     "Test Event 1",
		Description: "Description 1",
		Location:    "A Place",
		Start:       internal.EventTime{DateTime: "2023-09-19T10:00:00+01:00"},
		End:         internal.EventTime{DateTime: "2023-09-19T11:00:00+01:00"},
	}, events[0])
	assert.Equal(t, "Description 2\nTickets: http://t.example", events[1].Description)

	var mapped []*internal.Event
	for _, raw := range events {
		e, err := internal.MapEvent(raw, nil)
		require.NoError(t, err)
		mapped = append(mapped, e)
	}
	assert.Equal(t, "Sep 19th", mapped[0].Date())
	assert.Equal(t, "10AM", mapped[0].StartTime())
	assert.Equal(t, "11AM", mapped[0].EndTime())
	assert.Equal(t, "Sep 20th", mapped[1].Date())
	assert.Equal(t, "12AM", mapped[1].StartTime())
	assert.Equal(t, "1AM", mapped[1].EndTime())
	assert.Equal(t, "http://t.example", mapped[1].Tickets())
}

func TestEvents_NoEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": []}`))
	})

	events, err := c.Events(context.Background(), testCal, testRange(t))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEvents_FollowsPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("pageToken") {
		case "":
			w.Write([]byte(`{"nextPageToken": "p2", "items": [{"summary": "One", "start": {"date": "2023-09-01"}, "end": {"date": "2023-09-02"}}]}`))
		case "p2":
			w.Write([]byte(`{"items": [{"summary": "Two", "status": "cancelled"}, {"summary": "Three", "start": {"date": "2023-09-03"}, "end": {"date": "2023-09-04"}}]}`))
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pageToken"))
		}
	})

	events, err := c.Events(context.Background(), testCal, testRange(t))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "One", events[0].Summary)
	assert.Equal(t, "Three", events[1].Summary)
	assert.Equal(t, internal.EventTime{Date: "2023-09-03"}, events[1].Start)
}

const rateLimited = `{"error": {"code": 403, "message": "Rate Limit Exceeded", "errors": [{"domain": "usageLimits", "reason": "rateLimitExceeded", "message": "Rate Limit Exceeded"}]}}`

func TestEvents_RetriesRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(rateLimited))
			return
		}
		w.Write([]byte(`{"items": []}`))
	})

	_, err := c.Events(context.Background(), testCal, testRange(t))
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestEvents_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(rateLimited))
	})
	c.MaxRetries = 2

	_, err := c.Events(context.Background(), testCal, testRange(t))
	require.Error(t, err)
	assert.True(t, shouldRetry(err))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestEvents_ProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": 404, "message": "Not Found", "errors": [{"reason": "notFound"}]}}`))
	})

	_, err := c.Events(context.Background(), testCal, testRange(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google: listing events of google/primary")
	assert.True(t, errIsReason(err, "notFound"))
}

func TestEvents_InvalidCredentials(t *testing.T) {
	c := NewClient(nil)
	cal := *testCal
	cal.Account.Auth = "not json"

	_, err := c.Events(context.Background(), &cal, testRange(t))
	assert.ErrorContains(t, err, "google: parsing credentials")
}
