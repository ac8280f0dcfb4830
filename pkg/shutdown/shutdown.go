package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalError is the cancel cause of a context ended by a signal.
type SignalError struct {
	Signal os.Signal
}

func (e SignalError) Error() string { return "received signal " + e.Signal.String() }

// WithSignals returns a context canceled on the first of sigs, SIGINT and
// SIGTERM when none are given. context.Cause reports the signal.
func WithSignals(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case s := <-ch:
			cancel(SignalError{Signal: s})
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}
