// Package task defines the task item shown on the screen and its completion state.
package task

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// State is the completion state of a task.
type State int

const (
	// NotDone is the state every new task starts in.
	NotDone State = iota

	// Done marks a completed task.
	Done
)

// Display strings for each state.
const (
	NotDoneLabel = "No Realizado"
	DoneLabel    = "Realizado"
)

// String returns the display label of the state.
func (s State) String() string {
	if s == Done {
		return DoneLabel
	}
	return NotDoneLabel
}

// Toggle returns the opposite state.
func (s State) Toggle() State {
	if s == Done {
		return NotDone
	}
	return Done
}

// ParseState parses a display label or a short form (done, not_done, ...).
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", strings.ToLower(NotDoneLabel), "not_done", "notdone", "todo", "needsaction":
		return NotDone, nil
	case strings.ToLower(DoneLabel), "done", "completed":
		return Done, nil
	}
	return NotDone, fmt.Errorf("unknown task state: %q", s)
}

// MarshalYAML writes the state as its display label.
func (s State) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts any form understood by ParseState.
func (s *State) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	st, err := ParseState(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = st
	return nil
}

// Task is one to-do item.
type Task struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	State       State  `yaml:"state"`
}

// Toggled returns a copy of t with its state flipped.
func (t Task) Toggled() Task {
	t.State = t.State.Toggle()
	return t
}

// Clone returns a copy of tasks backed by a new array.
// A nil slice stays nil.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// MaxID returns the highest id in tasks, or 0 for an empty list.
func MaxID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
