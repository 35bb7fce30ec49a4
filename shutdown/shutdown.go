// Package shutdown turns the first interrupt or termination signal into a one-shot
// cancellation of a context.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

const logMsgSignalReceived = "receive the exit signal, exit..."

// Logger interface for the signal notice.
type Logger interface {
	Info(msg string, args ...any)
}

// Notify returns a context that is canceled once SIGINT or SIGTERM arrives, or when parent is done.
// Further signals are ignored until stop is called. stop unregisters the handler and cancels the
// context; it is safe to call more than once.
func Notify(parent context.Context, logger Logger) (context.Context, context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(parent)
	go watch(ctx, cancel, sigChan, logger)

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func watch(ctx context.Context, cancel context.CancelFunc, signals <-chan os.Signal, logger Logger) {
	select {
	case sig := <-signals:
		if logger != nil {
			logger.Info(logMsgSignalReceived, "signal", sig.String())
		}

		cancel()

	case <-ctx.Done():
	}
}
