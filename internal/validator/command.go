package validator

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// InstallRootPlaceholder is replaced in a tool path by the install root.
	InstallRootPlaceholder = "{HTML_CHECKER}"

	DefaultInterpreter = "java"
	DefaultToolPath    = InstallRootPlaceholder + "/vnujar/vnu.jar"

	jarFlag = "-jar"
)

// Command describes how to launch the validator tool.
type Command struct {
	Interpreter string // Leading interpreter name, empty to run the tool directly
	ToolPath    string // Path to the tool, may start with InstallRootPlaceholder
	InstallRoot string // Replacement for InstallRootPlaceholder, defaults to the executable dir
}

// DefaultCommand returns the command running vnu.jar with java.
func DefaultCommand() Command {
	return Command{
		Interpreter: DefaultInterpreter,
		ToolPath:    DefaultToolPath,
	}
}

// InterpreterPart returns the interpreter name followed by its options and,
// for java, the launch flag.
func (c Command) InterpreterPart(opts Options) []string {
	var args []string

	if c.Interpreter != "" {
		args = append(args, c.Interpreter)
	}

	args = append(args, Compile(opts)...)

	if isJava(c.Interpreter) {
		args = append(args, jarFlag)
	}

	return args
}

// ToolPathPart returns the resolved tool path, or nothing if no tool path is configured.
func (c Command) ToolPathPart() []string {
	if c.ToolPath == "" {
		return nil
	}
	return []string{strings.ReplaceAll(c.ToolPath, InstallRootPlaceholder, c.installRoot())}
}

// Build returns the full command line to validate the given locations.
func (c Command) Build(locations []string, interpreterOpts, toolOpts Options) []string {
	args := c.InterpreterPart(interpreterOpts)
	args = append(args, c.ToolPathPart()...)
	args = append(args, Compile(toolOpts)...)
	args = append(args, locations...)
	return args
}

func (c Command) installRoot() string {
	if c.InstallRoot != "" {
		if abs, err := filepath.Abs(c.InstallRoot); err == nil {
			return abs
		}
		return c.InstallRoot
	}
	return executableDir()
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func isJava(interpreter string) bool {
	switch filepath.Base(interpreter) {
	case "java", "java.exe":
		return true
	}
	return false
}
