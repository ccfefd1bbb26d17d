//go:build unix

package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchSignals publishes Background followed by Active on b every time the
// process is continued after a job-control stop (Ctrl-Z, then fg or bg).
// It returns when ctx is done.
func WatchSignals(ctx context.Context, b *Broadcaster) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGCONT)

	go func() {
		defer signal.Stop(sigChan)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigChan:
				b.Publish(Background)
				b.Publish(Active)
			}
		}
	}()
}
