package validator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Runner executes a fully built command line and returns its combined output.
type Runner interface {
	Run(ctx context.Context, argv []string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, merging stdout and stderr.
type ExecRunner struct {
	Timeout time.Duration // Zero means no timeout
	logger  hclog.Logger
}

// NewExecRunner creates a runner mirroring process output to logger at trace level.
// A nil logger disables the mirroring.
func NewExecRunner(logger hclog.Logger, timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		Timeout: timeout,
		logger:  logger,
	}
}

// Run executes argv[0] with the remaining arguments. Failing to start the
// process is reported as ErrInterpreterUnreachable, a non-zero exit as
// ErrToolExecutionFailed with the captured output.
func (r *ExecRunner) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, wrapInterpreterUnreachable(errors.New("empty command"))
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdBuffer bytes.Buffer
	var out io.Writer = &stdBuffer
	if r.logger != nil {
		r.logger.Debug("running validator", "cmd", cmd.Args)
		out = io.MultiWriter(r.logger.StandardWriter(&hclog.StandardLoggerOptions{
			ForceLevel: hclog.Trace,
		}), &stdBuffer)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	started := time.Now()
	err := cmd.Run()
	if r.logger != nil {
		r.logger.Debug("validator finished", "elapsed", time.Since(started).String(), "bytes", stdBuffer.Len())
	}
	if err == nil {
		return stdBuffer.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("validator interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, wrapToolExecutionFailed(stdBuffer.Bytes())
	}
	return nil, wrapInterpreterUnreachable(err)
}
