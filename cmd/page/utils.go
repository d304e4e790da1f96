package page

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/html-checker/internal/export"
	"github.com/scan-io-git/html-checker/internal/validator"
	"github.com/scan-io-git/html-checker/pkg/shared/config"
	"github.com/scan-io-git/html-checker/pkg/shared/files"
)

const reportName = "html-checker-report"

// hasFlags reports whether any flag was set on the command line.
func hasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) { changed = true })
	return changed
}

// collectLocations returns the positional locations or the ones listed in the input file.
func collectLocations(options *RunOptionsPage, args []string) ([]string, error) {
	if options.InputFile == "" {
		return args, nil
	}
	return readLocationsFile(options.InputFile)
}

// readLocationsFile reads one location per line. Blank lines and lines starting with # are skipped.
func readLocationsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}
	defer f.Close()

	var locations []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		locations = append(locations, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("input file %q lists no locations", path)
	}
	return locations, nil
}

// buildRequest merges the option sets from the config file with the ones set by flags.
func buildRequest(cfg *config.Config, options *RunOptionsPage, locations []string) validator.Request {
	interpreterOpts := validator.OptionsFromMapSlice(cfg.Validator.InterpreterOptions)
	if options.Xss != "" {
		interpreterOpts = slices.DeleteFunc(interpreterOpts, func(opt validator.Option) bool {
			return strings.HasPrefix(opt.Name, "-Xss")
		})
		interpreterOpts = interpreterOpts.With(validator.Flag("-Xss" + options.Xss))
	}

	toolOpts := validator.OptionsFromMapSlice(cfg.Validator.ToolOptions)
	if options.NoStream {
		toolOpts = toolOpts.With(validator.Flag("--no-stream"))
	}

	return validator.Request{
		Locations:          locations,
		InterpreterOptions: interpreterOpts,
		ToolOptions:        toolOpts,
		Split:              options.Split || config.GetBoolValue(cfg, "Validator.Split", false),
	}
}

// writeReport renders reg to out, or to a file when outputPath is set.
func writeReport(exporter export.Exporter, reg *validator.Registry, outputPath string, out io.Writer, log hclog.Logger) error {
	if outputPath == "" {
		return exporter.Export(out, reg)
	}

	reportPath, _, err := files.DetermineFileFullPath(outputPath, reportName+"."+exporter.Extension())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, reg); err != nil {
		return err
	}
	if err := files.WriteReport(reportPath, buf.Bytes()); err != nil {
		return err
	}
	log.Info("report saved", "path", reportPath)
	return nil
}
