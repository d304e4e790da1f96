package errors

import "fmt"

const (
	// ExitCodeError is returned when validation could not be carried out.
	ExitCodeError = 1
	// ExitCodeFindings is returned when findings were reported and the caller asked to fail on them.
	ExitCodeFindings = 2
)

// CommandError represents a command failure carrying the process exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.err
}

// NewCommandError creates a new CommandError wrapping err.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		err:         err,
	}
}

// NewFindingsError reports that count findings were found across locations.
func NewFindingsError(count, locations int) *CommandError {
	return NewCommandError(fmt.Errorf("%d finding(s) reported across %d location(s)", count, locations), ExitCodeFindings)
}
