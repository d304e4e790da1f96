package validator

import (
	"errors"
	"fmt"
)

var (
	ErrInterpreterUnreachable = errors.New("unable to reach interpreter to run validator")
	ErrToolExecutionFailed    = errors.New("validator execution failed")
	ErrMalformedPayload       = errors.New("malformed validator payload")
)

// wrapInterpreterUnreachable adds the OS-level cause to ErrInterpreterUnreachable.
func wrapInterpreterUnreachable(err error) error {
	return fmt.Errorf("%w: %w", ErrInterpreterUnreachable, err)
}

// wrapToolExecutionFailed embeds the captured process output verbatim.
func wrapToolExecutionFailed(output []byte) error {
	return fmt.Errorf("%w: %s", ErrToolExecutionFailed, output)
}

// wrapMalformedPayload adds the decode failure to ErrMalformedPayload.
func wrapMalformedPayload(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
}
