package page

import (
	"context"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/html-checker/cmd/version"
	"github.com/scan-io-git/html-checker/internal/export"
	"github.com/scan-io-git/html-checker/internal/validator"
	"github.com/scan-io-git/html-checker/pkg/shared/config"
	cmderrors "github.com/scan-io-git/html-checker/pkg/shared/errors"
	"github.com/scan-io-git/html-checker/pkg/shared/logger"
)

// RunOptionsPage holds the arguments for the page command.
type RunOptionsPage struct {
	InputFile      string
	Xss            string
	NoStream       bool
	UserAgent      string
	Safe           bool
	Split          bool
	Format         string
	OutputPath     string
	Threads        int
	FailOnFindings bool
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	pageOptions      RunOptionsPage
	examplePageUsage = `  # Validating a local file and a page
  html-checker page index.html https://example.org/

  # Validating every location listed in a file, one invocation per location, 4 at a time
  html-checker page --input-file /path/to/locations.txt --split -j 4

  # Raising the java thread stack size for deeply nested documents
  html-checker page --xss 1024k index.html

  # Writing a SARIF report and failing when anything is reported
  html-checker page --format sarif --output /path/to/reports/ --fail-on-findings index.html

  # Reporting execution errors as findings instead of failing
  html-checker page --safe --format json https://example.org/`
)

// PageCmd represents the page command.
var PageCmd = &cobra.Command{
	Use:                   "page [--input-file/-i PATH] [--format/-f FORMAT] [--output/-o PATH] [--split] [-j THREADS_NUMBER, default=1] [LOCATION...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               examplePageUsage,
	Short:                 "Validates HTML files and pages and reports the findings per location",
	RunE:                  runPageCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runPageCommand executes the page command.
func runPageCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !hasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runPage(ctx, AppConfig, &pageOptions, args, cmd.OutOrStdout())
}

// runPage validates the requested locations and writes the report to out or to the output path.
func runPage(ctx context.Context, cfg *config.Config, options *RunOptionsPage, args []string, out io.Writer) error {
	if cfg == nil {
		cfg = config.Default()
	}
	log := logger.NewLogger(cfg, "core-page")

	if err := validatePageArgs(options, args); err != nil {
		log.Error("invalid page arguments", "error", err)
		return cmderrors.NewCommandError(err, cmderrors.ExitCodeError)
	}

	locations, err := collectLocations(options, args)
	if err != nil {
		log.Error("failed to collect locations", "error", err)
		return cmderrors.NewCommandError(err, cmderrors.ExitCodeError)
	}

	// a file report needs the exporter to write to the file, not to the logger
	reportLogger := log.Named("report")
	if options.OutputPath != "" {
		reportLogger = nil
	}
	exporter, err := export.New(options.Format, reportLogger)
	if err != nil {
		return cmderrors.NewCommandError(err, cmderrors.ExitCodeError)
	}

	v := newValidator(cfg, options, log)
	reg, err := v.Validate(ctx, buildRequest(cfg, options, locations))
	if err != nil {
		log.Error("page command failed", "error", err)
		return cmderrors.NewCommandError(err, cmderrors.ExitCodeError)
	}

	if err := writeReport(exporter, reg, options.OutputPath, out, log); err != nil {
		log.Error("failed to write report", "error", err)
		return cmderrors.NewCommandError(err, cmderrors.ExitCodeError)
	}

	if options.FailOnFindings && reg.FindingsCount() > 0 {
		return cmderrors.NewFindingsError(reg.FindingsCount(), reg.Len())
	}

	log.Info("page command completed successfully", "locations", reg.Len(), "findings", reg.FindingsCount())
	return nil
}

// newValidator configures a validator from the config file, overridden by flags.
func newValidator(cfg *config.Config, options *RunOptionsPage, log hclog.Logger) *validator.Validator {
	command := validator.Command{
		Interpreter: cfg.Validator.Interpreter,
		ToolPath:    cfg.Validator.ToolPath,
		InstallRoot: cfg.Validator.InstallRoot,
	}
	runner := validator.NewExecRunner(log.Named("runner"), cfg.Validator.Timeout)

	mode := validator.Strict
	if options.Safe || config.GetBoolValue(cfg, "Validator.Safe", false) {
		mode = validator.Lenient
	}

	threads := options.Threads
	if threads == 0 {
		threads = cfg.Validator.Concurrency
	}

	return validator.New(command, runner, log.Named("validator")).
		WithMode(mode).
		WithUserAgent(config.SetThen(options.UserAgent, config.SetThen(cfg.Validator.UserAgent, "html-checker/"+version.CoreVersion))).
		WithConcurrency(threads)
}

// Initialize flags for the page command.
func init() {
	PageCmd.Flags().StringVarP(&pageOptions.InputFile, "input-file", "i", "", "Path to a file listing locations to validate, one per line.")
	PageCmd.Flags().StringVar(&pageOptions.Xss, "xss", "", "Thread stack size for the java interpreter, e.g. 512k or 2m.")
	PageCmd.Flags().BoolVar(&pageOptions.NoStream, "no-stream", false, "Disable streaming parsing in the validator.")
	PageCmd.Flags().StringVar(&pageOptions.UserAgent, "user-agent", "", "User agent the validator sends when fetching URLs.")
	PageCmd.Flags().BoolVar(&pageOptions.Safe, "safe", false, "Report execution errors as a critical finding instead of failing.")
	PageCmd.Flags().BoolVar(&pageOptions.Split, "split", false, "Run the validator once per location.")
	PageCmd.Flags().StringVarP(&pageOptions.Format, "format", "f", export.FormatLog, "Format for the report with results: log, json or sarif.")
	PageCmd.Flags().BoolP("help", "h", false, "Show help for the page command.")
	PageCmd.Flags().StringVarP(&pageOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the report will be saved.")
	PageCmd.Flags().IntVarP(&pageOptions.Threads, "threads", "j", 0, "Number of concurrent validator runs in split mode (default from config).")
	PageCmd.Flags().BoolVar(&pageOptions.FailOnFindings, "fail-on-findings", false, "Exit with code 2 when any finding is reported.")
}
