package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown creates a context that will be cancelled on
// SIGINT or SIGTERM. Returns the context and a cleanup function that
// should be deferred.
func SetupGracefulShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
