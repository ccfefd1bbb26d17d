// Package seed loads the task list the screen starts from and resets to.
//
// A provider is asked once at startup; the slice it returns is then the
// fixed seed for the life of the store.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"taskscreen/internal/service"
	"taskscreen/internal/task"
)

// Provider supplies seed tasks.
type Provider interface {
	Load(ctx context.Context) ([]task.Task, error)
}

// Builtin serves the built-in mocked dataset.
type Builtin struct{}

// Load implements Provider.
func (Builtin) Load(ctx context.Context) ([]task.Task, error) {
	return task.MockedData(), nil
}

// File reads a YAML sequence of tasks, see Decode. A missing state means
// NotDone.
type File struct {
	Path string
}

// Load implements Provider.
func (f File) Load(ctx context.Context) ([]task.Task, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	tasks, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", f.Path, err)
	}
	return tasks, nil
}

// entry is one task as written in a seed file. ID is a pointer so that
// an explicit id: 0 can be told apart from a missing id.
type entry struct {
	ID          *int       `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	State       task.State `yaml:"state"`
}

// Decode parses a YAML task sequence. Explicit ids must be positive and
// unique. Tasks without an id take the lowest unused ids in file order.
func Decode(r io.Reader) ([]task.Task, error) {
	var entries []entry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil && err != io.EOF {
		return nil, err
	}

	used := make(map[int]bool, len(entries))
	for i, e := range entries {
		if e.ID == nil {
			continue
		}
		if *e.ID <= 0 {
			return nil, fmt.Errorf("task %d: invalid id %d", i+1, *e.ID)
		}
		if used[*e.ID] {
			return nil, fmt.Errorf("task %d: duplicate id %d", i+1, *e.ID)
		}
		used[*e.ID] = true
	}

	tasks := make([]task.Task, 0, len(entries))
	next := 1
	for _, e := range entries {
		t := task.Task{Title: e.Title, Description: e.Description, State: e.State}
		if e.ID != nil {
			t.ID = *e.ID
		} else {
			for used[next] {
				next++
			}
			t.ID = next
			used[next] = true
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Encode writes tasks as a YAML sequence, the format Decode reads.
func Encode(w io.Writer, tasks []task.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

// Remote snapshots a task list from a remote service. Tasks are numbered
// from 1 in API order; notes become descriptions.
type Remote struct {
	Service service.Service

	// ListName selects the list; empty means the default list.
	ListName string
}

// Load implements Provider.
func (r Remote) Load(ctx context.Context) ([]task.Task, error) {
	var (
		list service.TaskList
		err  error
	)
	if r.ListName != "" {
		list, err = r.Service.ResolveList(ctx, r.ListName)
	} else {
		list, err = r.Service.DefaultList(ctx)
	}
	if err != nil {
		return nil, err
	}

	remote, err := r.Service.ListTasks(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(remote))
	for i, rt := range remote {
		state := task.NotDone
		if rt.Status == service.StatusCompleted {
			state = task.Done
		}
		tasks = append(tasks, task.Task{
			ID:          i + 1,
			Title:       rt.Title,
			Description: rt.Notes,
			State:       state,
		})
	}
	return tasks, nil
}
