package page

import (
	"fmt"
	"regexp"

	"github.com/scan-io-git/html-checker/internal/export"
	"github.com/scan-io-git/html-checker/pkg/shared/files"
)

var xssPattern = regexp.MustCompile(`^[0-9]+[kKmMgG]?$`)

// validatePageArgs validates the arguments provided to the page command.
func validatePageArgs(options *RunOptionsPage, args []string) error {
	if len(args) == 0 && options.InputFile == "" {
		return fmt.Errorf("either 'input-file' flag or at least one location must be specified")
	}

	if options.InputFile != "" {
		if len(args) > 0 {
			return fmt.Errorf("you cannot use an 'input-file' flag and locations at the same time")
		}
		if err := files.ValidatePath(options.InputFile); err != nil {
			return fmt.Errorf("invalid 'input-file': %w", err)
		}
	}

	if options.Xss != "" && !xssPattern.MatchString(options.Xss) {
		return fmt.Errorf("the 'xss' flag must be a size such as 512k, got %q", options.Xss)
	}

	if !export.IsSupported(options.Format) {
		return fmt.Errorf("unsupported format %q", options.Format)
	}

	if options.Threads < 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	return nil
}
