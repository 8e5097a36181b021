package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/calendarbot/internal"
)

type stubProvider struct{}

func (stubProvider) Events(context.Context, *internal.Calendar, internal.Range) ([]*internal.RawEvent, error) {
	return nil, nil
}

func TestMux(t *testing.T) {
	mux := NewMux()
	mux.Register("ics", stubProvider{})
	mux.Register("google", stubProvider{})

	p, err := mux.Get("google")
	require.NoError(t, err)
	assert.Equal(t, stubProvider{}, p)

	_, err = mux.Get("outlook")
	assert.EqualError(t, err, `calendar "outlook" is not implemented (available: google, ics)`)
}
