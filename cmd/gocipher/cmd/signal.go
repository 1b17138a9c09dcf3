package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalHandler returns a context that is cancelled on SIGTERM or
// SIGINT, calling callback first. The returned stop function releases the
// signal registration.
func setupSignalHandler(parent context.Context, callback func(os.Signal)) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if callback != nil {
				callback(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
