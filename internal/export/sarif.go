package export

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/html-checker/internal/validator"
)

const (
	toolName           = "html-checker"
	toolInformationURI = "https://validator.github.io/validator/"
)

// SARIFExporter writes findings as a SARIF 2.1.0 log with one rule per finding kind.
type SARIFExporter struct{}

func (e *SARIFExporter) Extension() string { return "sarif" }

func (e *SARIFExporter) Export(w io.Writer, reg *validator.Registry) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolInformationURI)
	for location, findings := range reg.All() {
		for _, f := range findings {
			ruleID := kind(f)
			run.AddRule(ruleID).
				WithDescription(fmt.Sprintf("HTML validator %s", ruleID)).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level(f)})

			result := sarif.NewRuleResult(ruleID).
				WithMessage(sarif.NewTextMessage(stringField(f, "message"))).
				WithLevel(level(f))
			if location != validator.AllBucket {
				result.WithLocations([]*sarif.Location{sarifLocation(location, f)})
			}
			run.AddResult(result)
		}
	}
	report.AddRun(run)

	return report.PrettyWrite(w)
}

func sarifLocation(location string, f validator.Finding) *sarif.Location {
	region := sarif.NewRegion()
	start, hasStart := intField(f, "firstLine")
	end, hasEnd := intField(f, "lastLine")
	if !hasStart {
		// single-line messages only carry lastLine
		start, hasStart = end, hasEnd
	}
	if hasStart {
		region.WithStartLine(start)
	}
	if hasEnd {
		region.WithEndLine(end)
	}
	if col, ok := intField(f, "firstColumn"); ok {
		region.WithStartColumn(col)
	}
	if col, ok := intField(f, "lastColumn"); ok {
		region.WithEndColumn(col)
	}

	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(locationURI(location)))
	if hasStart || hasEnd {
		physical.WithRegion(region)
	}
	return sarif.NewLocation().WithPhysicalLocation(physical)
}

func locationURI(location string) string {
	if validator.IsURL(location) || !filepath.IsAbs(location) {
		return location
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(location)}).String()
}

// level maps a finding to a SARIF level.
func level(f validator.Finding) string {
	switch stringField(f, "type") {
	case validator.FindingTypeCritical, "error", "non-document-error":
		return "error"
	case "info":
		if stringField(f, "subType") == "warning" {
			return "warning"
		}
		return "note"
	default:
		return "none"
	}
}
