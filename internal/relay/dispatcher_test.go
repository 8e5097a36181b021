package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, nil)

	sent, err := d.Dispatch(context.Background(), []string{"first", "second", "third"})
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"first\n\nsecond\n\nthird"}, sender.texts)
}

func TestDispatch_Empty(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, nil)

	sent, err := d.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.texts)
}

func TestDispatch_Error(t *testing.T) {
	sendErr := errors.New("rejected")
	d := NewDispatcher(&recordingSender{err: sendErr}, nil)

	sent, err := d.Dispatch(context.Background(), []string{"only"})
	assert.True(t, sent)
	assert.ErrorIs(t, err, ErrDispatch)
	assert.ErrorIs(t, err, sendErr)
	assert.EqualError(t, err, "unable to dispatch events: rejected")
}
