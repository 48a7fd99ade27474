package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shashank-93rao/statinfer/pkg/statslog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Create channel to receive sys interrupts
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	// In a separate goroutine, wait for any interruption and stop the run
	go func() {
		select {
		case sig := <-sigChannel:
			statslog.Zero.Warn().Str("signal", sig.String()).Msg("received signal, stopping")
			cancel() // Notify any child goroutines to stop working
		case <-ctx.Done():
		}
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	signal.Stop(sigChannel)
	if err != nil {
		statslog.Zero.Error().Err(err).Msg("statinfer failed")
		os.Exit(1)
	}
}
