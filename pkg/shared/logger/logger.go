package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/html-checker/pkg/shared/config"
)

// Output is where loggers write. Reports go to stdout, so logs stay on stderr.
var Output io.Writer = os.Stderr

// NewLogger returns the named logger of one html-checker component, such as
// "core-page" or the validator run it drives. The level comes from the config
// file, then from HTML_CHECKER_LOG_LEVEL, and is INFO otherwise. OFF silences
// the component.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	level := os.Getenv("HTML_CHECKER_LOG_LEVEL")
	if cfg != nil && cfg.Logger.Level != "" {
		level = cfg.Logger.Level
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      Output,
		Level:       parseLevel(level),
	})
}

// parseLevel maps a configured level name to hclog, case-insensitively.
func parseLevel(level string) hclog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	case "OFF":
		return hclog.Off
	default:
		return hclog.Info
	}
}
