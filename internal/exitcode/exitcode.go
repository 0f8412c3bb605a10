// Package exitcode defines the process exit codes of the CLI.
package exitcode

const (
	// Success indicates successful completion, including writes that were
	// only kept in memory (reported as a warning).
	Success = 0

	// UserError indicates bad arguments, an unknown task or an invalid date.
	UserError = 1

	// AuthError indicates an invalid config.yaml or missing Google credentials.
	AuthError = 2

	// BackendError indicates a storage or Google Calendar failure.
	BackendError = 3
)
