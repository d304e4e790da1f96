package version

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/html-checker/internal/validator"
	"github.com/scan-io-git/html-checker/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Versions holds version information for the core application and the validator runtime.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
	Interpreter   string `json:"interpreter"`
	ToolPath      string `json:"tool_path"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application and the validator runtime",
		Run: func(cmd *cobra.Command, args []string) {
			printVersionInfo(cmd.OutOrStdout(), collectVersions(AppConfig))
		},
	}
}

// collectVersions resolves the interpreter against PATH and expands the tool path.
func collectVersions(cfg *config.Config) Versions {
	if cfg == nil {
		cfg = config.Default()
	}
	command := validator.Command{
		Interpreter: cfg.Validator.Interpreter,
		ToolPath:    cfg.Validator.ToolPath,
		InstallRoot: cfg.Validator.InstallRoot,
	}

	v := Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
		Interpreter:   "none",
		ToolPath:      "none",
	}
	if toolPath := command.ToolPathPart(); len(toolPath) > 0 {
		v.ToolPath = toolPath[0]
	}
	if command.Interpreter != "" {
		if path, err := exec.LookPath(command.Interpreter); err == nil {
			v.Interpreter = path
		} else {
			v.Interpreter = fmt.Sprintf("%s (not found)", command.Interpreter)
		}
	}
	return v
}

// printVersionInfo prints the version information for the core application and the validator runtime.
func printVersionInfo(w io.Writer, v Versions) {
	fmt.Fprintf(w, "Core Version: v%s\n", v.Version)
	fmt.Fprintf(w, "Go Version: %s\n", v.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", v.BuildTime)
	fmt.Fprintf(w, "Interpreter: %s\n", v.Interpreter)
	fmt.Fprintf(w, "Validator: %s\n", v.ToolPath)
}
