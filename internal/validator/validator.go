package validator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Mode selects what Validate does with execution errors.
type Mode int

const (
	// Strict propagates every error to the caller.
	Strict Mode = iota
	// Lenient reports errors as a critical finding in the AllBucket location.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// AllBucket is the registry key used for errors not tied to a location.
const AllBucket = "all"

// DefaultUserAgent is sent by the validator tool when fetching URLs.
var DefaultUserAgent = "html-checker"

// Request holds the arguments of a single Validate call.
type Request struct {
	Locations          []string // Local paths or http(s) URLs
	InterpreterOptions Options  // Options placed between the interpreter and the tool path
	ToolOptions        Options  // Options passed to the validator tool
	Split              bool     // Run the validator once per location
}

// Validator drives the validator tool and aggregates its reports.
type Validator struct {
	command     Command
	runner      Runner
	logger      hclog.Logger
	mode        Mode
	userAgent   string
	concurrency int
}

// New creates a Validator running command through runner.
func New(command Command, runner Runner, logger hclog.Logger) *Validator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Validator{
		command:     command,
		runner:      runner,
		logger:      logger,
		mode:        Strict,
		userAgent:   DefaultUserAgent,
		concurrency: 1,
	}
}

// WithMode returns a copy of v using mode.
func (v *Validator) WithMode(mode Mode) *Validator {
	ret := *v
	ret.mode = mode
	return &ret
}

// WithUserAgent returns a copy of v using userAgent as the default user agent.
func (v *Validator) WithUserAgent(userAgent string) *Validator {
	ret := *v
	if userAgent != "" {
		ret.userAgent = userAgent
	}
	return &ret
}

// WithConcurrency returns a copy of v running up to n split invocations at once.
func (v *Validator) WithConcurrency(n int) *Validator {
	ret := *v
	if n < 1 {
		n = 1
	}
	ret.concurrency = n
	return &ret
}

// DefaultToolOptions returns the options Validate relies on: JSON output,
// zero exit status for documents with errors, and a user agent.
func (v *Validator) DefaultToolOptions() Options {
	return Options{
		Value("--format", "json"),
		Flag("--exit-zero-always"),
		Value("--user-agent", v.userAgent),
	}
}

// Validate validates all locations and returns the registry of findings.
// Every distinct location is a registry key, in the order first given.
func (v *Validator) Validate(ctx context.Context, req Request) (*Registry, error) {
	logger := v.logger.With("run_id", uuid.NewString())

	reg, err := v.validate(ctx, logger, req)
	if err == nil {
		return reg, nil
	}

	// a caller giving up is not a validation result
	if v.mode == Lenient && ctx.Err() == nil {
		logger.Warn("validation failed, reporting as finding", "error", err)
		return lenientRegistry(err), nil
	}
	logger.Error("validation failed", "error", err)
	return nil, err
}

func (v *Validator) validate(ctx context.Context, logger hclog.Logger, req Request) (*Registry, error) {
	toolOpts := req.ToolOptions.WithDefaults(v.DefaultToolOptions())

	locations := ReduceUnique(req.Locations)
	reg, submit, err := Seed(locations)
	if err != nil {
		return nil, err
	}

	logger.Info("validation starting",
		"locations", len(locations),
		"submitted", len(submit),
		"split", req.Split,
		"mode", v.mode.String(),
	)

	if len(submit) == 0 {
		logger.Debug("nothing to submit to the validator")
		return reg, nil
	}

	var batches [][]string
	if req.Split {
		for _, location := range submit {
			batches = append(batches, []string{location})
		}
	} else {
		batches = [][]string{submit}
	}

	partials, err := v.runBatches(ctx, logger, batches, req.InterpreterOptions, toolOpts, reg)
	if err != nil {
		return nil, err
	}

	// single writer, submission order
	for _, partial := range partials {
		reg.Merge(partial)
	}

	logger.Info("validation finished", "locations", reg.Len(), "findings", reg.FindingsCount())
	return reg, nil
}

// runBatches runs one validator invocation per batch. Partial registries are
// returned in batch order whatever the concurrency is.
func (v *Validator) runBatches(ctx context.Context, logger hclog.Logger, batches [][]string, interpreterOpts, toolOpts Options, seed *Registry) ([]*Registry, error) {
	partials := make([]*Registry, len(batches))

	if v.concurrency <= 1 || len(batches) == 1 {
		for i, batch := range batches {
			partial, err := v.validateItem(ctx, logger, batch, interpreterOpts, toolOpts, seed)
			if err != nil {
				return nil, err
			}
			partials[i] = partial
		}
		return partials, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			partial, err := v.validateItem(gctx, logger, batch, interpreterOpts, toolOpts, seed)
			if err != nil {
				return err
			}
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

// validateItem runs the validator once on locations and parses its report.
// seed is only read here.
func (v *Validator) validateItem(ctx context.Context, logger hclog.Logger, locations []string, interpreterOpts, toolOpts Options, seed *Registry) (*Registry, error) {
	argv := v.command.Build(locations, interpreterOpts, toolOpts)
	logger.Debug("validator command", "cmd", argv)

	raw, err := v.runner.Run(ctx, argv)
	if err != nil {
		return nil, err
	}

	result, err := Parse(locations, raw, seed)
	if err != nil {
		return nil, err
	}
	if result.Dropped > 0 {
		logger.Debug("messages without a matching location dropped", "count", result.Dropped)
	}
	return result.Registry, nil
}

func lenientRegistry(err error) *Registry {
	reg := NewRegistry()
	reg.Set(AllBucket, []Finding{{
		"type":    FindingTypeCritical,
		"message": err.Error(),
	}})
	return reg
}
