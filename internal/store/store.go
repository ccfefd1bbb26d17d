// Package store holds the screen's task list and pending inputs.
//
// A Store is the single source of truth for the presentation layer: it
// reads snapshots and calls the operations below, nothing else. Every
// mutation replaces the task slice instead of editing it in place, so a
// slice obtained from an earlier snapshot never changes underneath its
// holder.
package store

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"taskscreen/internal/lifecycle"
	"taskscreen/internal/task"
)

// Pending is the not-yet-submitted input pair.
type Pending struct {
	Title       string
	Description string
}

// Snapshot is a consistent view of the store.
// Version increases by one on every state change.
type Snapshot struct {
	Version uint64
	Tasks   []task.Task
	Pending Pending
	Phase   lifecycle.Phase
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store owns the task list, the pending inputs and the last reported
// lifecycle phase. It is safe for concurrent use; operations are applied
// one at a time in the order they acquire the store.
type Store struct {
	mu      sync.Mutex
	seed    []task.Task
	tasks   []task.Task
	nextID  int
	pending Pending
	phase   lifecycle.Phase
	version uint64

	unsubscribe func()
	disposeOnce sync.Once

	lmu       sync.Mutex
	listeners map[int]func(Snapshot)
	order     []int
	nextLID   int

	logger *slog.Logger
}

// New creates a Store initialized from seed and subscribed to notifier.
// seed is copied; later changes to the caller's slice have no effect.
// The initial phase is the notifier's current phase, or Active when
// notifier is nil.
func New(seed []task.Task, notifier lifecycle.Notifier, opts ...Option) *Store {
	s := &Store{
		seed:      task.Clone(seed),
		phase:     lifecycle.Active,
		listeners: make(map[int]func(Snapshot)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", uuid.NewString())

	s.tasks = task.Clone(s.seed)
	s.nextID = task.MaxID(s.seed) + 1

	if notifier != nil {
		s.phase = notifier.Current()
		s.unsubscribe = notifier.Subscribe(s.OnLifecycleChange)
	}

	s.logger.Debug("store initialized", "tasks", len(s.tasks), "phase", s.phase.String())
	return s
}

// Tasks returns a copy of the current task list.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.Clone(s.tasks)
}

// Pending returns the current pending inputs.
func (s *Store) Pending() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Phase returns the last lifecycle phase the store saw.
func (s *Store) Phase() lifecycle.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns the full current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version: s.version,
		Tasks:   task.Clone(s.tasks),
		Pending: s.pending,
		Phase:   s.phase,
	}
}

// SetPendingTitle records an edit of the title input.
func (s *Store) SetPendingTitle(title string) {
	s.mu.Lock()
	s.pending.Title = title
	snap := s.commitLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SetPendingDescription records an edit of the description input.
func (s *Store) SetPendingDescription(description string) {
	s.mu.Lock()
	s.pending.Description = description
	snap := s.commitLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// AddTask appends a new NotDone task and clears the pending inputs.
// Empty title and description are accepted.
func (s *Store) AddTask(title, description string) task.Task {
	s.mu.Lock()
	t, snap := s.addLocked(title, description)
	s.mu.Unlock()
	s.notify(snap)
	return t
}

// Submit adds a task from the current pending inputs.
func (s *Store) Submit() task.Task {
	s.mu.Lock()
	t, snap := s.addLocked(s.pending.Title, s.pending.Description)
	s.mu.Unlock()
	s.notify(snap)
	return t
}

func (s *Store) addLocked(title, description string) (task.Task, Snapshot) {
	t := task.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		State:       task.NotDone,
	}
	s.nextID++

	next := make([]task.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, t)
	s.pending = Pending{}

	s.logger.Debug("task added", "id", t.ID, "tasks", len(s.tasks))
	return t, s.commitLocked()
}

// ToggleTaskState flips the state of every task whose id matches and
// returns how many were flipped. An unknown id leaves the list untouched
// and returns 0.
func (s *Store) ToggleTaskState(id int) int {
	s.mu.Lock()

	matched := 0
	for _, t := range s.tasks {
		if t.ID == id {
			matched++
		}
	}
	if matched == 0 {
		s.mu.Unlock()
		s.logger.Debug("toggle ignored, no such task", "id", id)
		return 0
	}

	next := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			t = t.Toggled()
		}
		next[i] = t
	}
	s.tasks = next
	snap := s.commitLocked()
	s.mu.Unlock()

	s.logger.Debug("task toggled", "id", id, "matched", matched)
	s.notify(snap)
	return matched
}

// OnLifecycleChange records the host's new phase. Coming back to Active
// from Inactive or Background replaces the task list with a fresh copy of
// the seed; pending inputs are kept.
func (s *Store) OnLifecycleChange(next lifecycle.Phase) {
	s.mu.Lock()
	prev := s.phase
	reset := prev.Suspended() && next == lifecycle.Active
	if reset {
		s.tasks = task.Clone(s.seed)
		s.nextID = task.MaxID(s.seed) + 1
	}
	s.phase = next
	snap := s.commitLocked()
	s.mu.Unlock()

	if reset {
		s.logger.Info("task list reset on resume", "from", prev.String(), "tasks", len(snap.Tasks))
	} else {
		s.logger.Debug("lifecycle change", "from", prev.String(), "to", next.String())
	}
	s.notify(snap)
}

// Dispose detaches the store from its lifecycle notifier. Later calls do
// nothing.
func (s *Store) Dispose() {
	s.disposeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.logger.Debug("store disposed")
	})
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change, outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	id := s.nextLID
	s.nextLID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) commitLocked() Snapshot {
	s.version++
	return s.snapshotLocked()
}

func (s *Store) notify(snap Snapshot) {
	s.lmu.Lock()
	fns := make([]func(Snapshot), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
