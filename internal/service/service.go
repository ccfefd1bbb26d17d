// Package service defines the backend-agnostic interface for reading remote task lists.
package service

import "context"

// Service defines the read-only operations used to snapshot a remote
// task list as seed data. Callers never import the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns every task in a list, open and completed,
	// in API order (no client-side sorting).
	ListTasks(ctx context.Context, listID string) ([]Task, error)
}
