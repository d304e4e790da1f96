// Package export renders validation registries as reports.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/html-checker/internal/validator"
)

const (
	FormatLog   = "log"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Formats lists the supported report formats.
var Formats = []string{FormatLog, FormatJSON, FormatSARIF}

// Exporter writes a registry to w.
type Exporter interface {
	Export(w io.Writer, reg *validator.Registry) error
	// Extension is the file extension used when the report is written to a folder.
	Extension() string
}

// New returns the exporter for format.
func New(format string, logger hclog.Logger) (Exporter, error) {
	switch strings.ToLower(format) {
	case FormatLog:
		return &LogExporter{logger: logger}, nil
	case FormatJSON:
		return &JSONExporter{Indent: "  "}, nil
	case FormatSARIF:
		return &SARIFExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
}

// IsSupported reports whether format names an exporter.
func IsSupported(format string) bool {
	return slices.Contains(Formats, strings.ToLower(format))
}

func stringField(f validator.Finding, key string) string {
	s, _ := f[key].(string)
	return s
}

// intField reads a numeric finding field. Numbers decoded from JSON are float64.
func intField(f validator.Finding, key string) (int, bool) {
	switch v := f[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// kind joins the finding type and subtype, e.g. "info.warning".
func kind(f validator.Finding) string {
	t := stringField(f, "type")
	if t == "" {
		t = "unknown"
	}
	if sub := stringField(f, "subType"); sub != "" {
		return t + "." + sub
	}
	return t
}
