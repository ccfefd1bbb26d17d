//go:build !unix

package lifecycle

import "context"

// WatchSignals is a no-op on platforms without job control.
func WatchSignals(ctx context.Context, b *Broadcaster) {}
