// Package exitcode defines the process exit codes of taskscreen.
package exitcode

const (
	// Success indicates successful completion, including a screen session
	// ended by quit or end of input.
	Success = 0

	// UserError covers bad arguments, invalid config.yaml, unknown seed
	// sources and unreadable seed files.
	UserError = 1

	// AuthError indicates missing or rejected Google credentials.
	AuthError = 2

	// BackendError indicates a Google Tasks API or network failure while
	// loading the seed.
	BackendError = 3
)
