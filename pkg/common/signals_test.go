package common

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestSetupGracefulShutdown(t *testing.T) {
	t.Run("Returns a live context", func(t *testing.T) {
		ctx, cancel := SetupGracefulShutdown()
		defer cancel()

		if ctx == nil {
			t.Fatal("SetupGracefulShutdown() returned nil context")
		}
		if err := ctx.Err(); err != nil {
			t.Errorf("context should not start cancelled, got %v", err)
		}
	})

	t.Run("Deferred cancel releases the context", func(t *testing.T) {
		ctx, cancel := SetupGracefulShutdown()
		cancel()

		select {
		case <-ctx.Done():
		case <-time.After(100 * time.Millisecond):
			t.Error("context was not released by cancel()")
		}
	})

	t.Run("SIGTERM cancels the context", func(t *testing.T) {
		ctx, cancel := SetupGracefulShutdown()
		defer cancel()

		go func() {
			time.Sleep(50 * time.Millisecond)
			proc, err := os.FindProcess(os.Getpid())
			if err != nil {
				return
			}
			_ = proc.Signal(syscall.SIGTERM)
		}()

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Error("context was not cancelled by SIGTERM")
		}
	})
}
