// Package lifecycle reports host foreground/background transitions.
package lifecycle

import (
	"fmt"
	"strings"
	"sync"
)

// Phase is the host process's foreground status.
type Phase int

const (
	// Active means the screen is in the foreground and receiving input.
	Active Phase = iota
	// Inactive means the host is transitioning or briefly interrupted.
	Inactive
	// Background means the host is not visible.
	Background
)

// String returns the lowercase phase name used by ParsePhase.
func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Background:
		return "background"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Suspended reports whether p is Inactive or Background.
func (p Phase) Suspended() bool {
	return p == Inactive || p == Background
}

// ParsePhase parses a phase name (case-insensitive).
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	case "background":
		return Background, nil
	}
	return Active, fmt.Errorf("unknown lifecycle phase: %q", s)
}

// Notifier delivers phase changes.
type Notifier interface {
	// Current returns the most recently reported phase.
	Current() Phase

	// Subscribe registers fn for every subsequent phase change.
	// The returned func removes the subscription; calling it more than
	// once is harmless.
	Subscribe(fn func(Phase)) (unsubscribe func())
}

// Broadcaster is an in-process Notifier. Phases passed to Publish are
// delivered to subscribers synchronously and in order.
type Broadcaster struct {
	// deliver serializes Publish calls so subscribers observe FIFO order.
	deliver sync.Mutex

	mu      sync.RWMutex
	current Phase
	nextID  int
	subs    map[int]func(Phase)
	order   []int
}

// NewBroadcaster creates a Broadcaster whose current phase is initial.
func NewBroadcaster(initial Phase) *Broadcaster {
	return &Broadcaster{
		current: initial,
		subs:    make(map[int]func(Phase)),
	}
}

// Current implements Notifier.
func (b *Broadcaster) Current() Phase {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Subscribe implements Notifier.
func (b *Broadcaster) Subscribe(fn func(Phase)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish records p as the current phase and delivers it to every
// subscriber in subscription order.
func (b *Broadcaster) Publish(p Phase) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	b.mu.Lock()
	b.current = p
	fns := make([]func(Phase), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
