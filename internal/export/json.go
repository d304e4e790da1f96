package export

import (
	"encoding/json"
	"io"

	"github.com/scan-io-git/html-checker/internal/validator"
)

// JSONExporter writes the registry as an ordered JSON object, clean locations mapping to null.
type JSONExporter struct {
	Indent string
}

func (e *JSONExporter) Extension() string { return "json" }

func (e *JSONExporter) Export(w io.Writer, reg *validator.Registry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if e.Indent != "" {
		enc.SetIndent("", e.Indent)
	}
	return enc.Encode(reg)
}
