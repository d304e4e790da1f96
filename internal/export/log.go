package export

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/html-checker/internal/validator"
)

// LogExporter reports findings through a logger, one line per finding.
// Errors are logged at error level, warnings at warn level and the rest at info.
type LogExporter struct {
	logger hclog.Logger
}

func (e *LogExporter) Extension() string { return "log" }

// Export ignores w unless no logger was configured.
func (e *LogExporter) Export(w io.Writer, reg *validator.Registry) error {
	logger := e.logger
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Name: "report", Output: w, DisableTime: true})
	}

	for location, findings := range reg.All() {
		if findings == nil {
			logger.Info("clean", "location", location)
			continue
		}
		for _, f := range findings {
			args := []interface{}{"location", location, "kind", kind(f)}
			if line, ok := intField(f, "lastLine"); ok {
				args = append(args, "line", line)
			}
			if col, ok := intField(f, "firstColumn"); ok {
				args = append(args, "column", col)
			}
			logger.Log(logLevel(f), stringField(f, "message"), args...)
		}
	}
	logger.Info("summary", "locations", reg.Len(), "findings", reg.FindingsCount())
	return nil
}

func logLevel(f validator.Finding) hclog.Level {
	switch level(f) {
	case "error":
		return hclog.Error
	case "warning":
		return hclog.Warn
	default:
		return hclog.Info
	}
}
