package relay

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guilherme-santos/calendarbot/internal"
)

const separator = "\n\n"

// Sender delivers a message to its destination.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// WriterSender writes messages to w.
type WriterSender struct {
	w io.Writer
}

func NewWriterSender(w io.Writer) *WriterSender {
	return &WriterSender{w: w}
}

func (s WriterSender) Send(_ context.Context, text string) error {
	_, err := fmt.Fprintln(s.w, text)
	return err
}

type Dispatcher struct {
	sender Sender
	logger *zap.Logger

	// Timeout bounds the delivery; zero means no bound.
	Timeout time.Duration
}

func NewDispatcher(sender Sender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: internal.OrNop(logger),
	}
}

// Dispatch joins messages with a blank line and delivers them in a single
// call. Nothing is sent when messages is empty, sent reports whether a call
// was made.
func (d Dispatcher) Dispatch(ctx context.Context, messages []string) (sent bool, err error) {
	if len(messages) == 0 {
		d.logger.Info("No content available, nothing to send")
		return false, nil
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	text := strings.Join(messages, separator)
	if err := d.sender.Send(ctx, text); err != nil {
		return true, fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	d.logger.Info("Message sent", zap.Int("events", len(messages)), zap.Int("length", len(text)))
	return true, nil
}
