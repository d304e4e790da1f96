package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	FindingTypeCritical = "critical"
	MissingFileMessage  = "File path does not exists."
)

// IsURL reports whether location is an http(s) URL rather than a local path.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// ReduceUnique returns items without duplicates, keeping the first occurrence
// of each and the input order.
func ReduceUnique[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	ret := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		ret = append(ret, item)
	}
	return ret
}

// MissingFileFinding returns the synthetic finding used for local paths not found on disk.
func MissingFileFinding() Finding {
	return Finding{
		"type":    FindingTypeCritical,
		"message": MissingFileMessage,
	}
}

// Seed builds the initial registry for locations and returns the locations
// that have to be submitted to the validator tool. Local paths are made
// absolute; missing ones get a synthetic finding and are not submitted.
func Seed(locations []string) (*Registry, []string, error) {
	reg := NewRegistry()
	submit := make([]string, 0, len(locations))

	for _, location := range locations {
		if IsURL(location) {
			if !reg.Has(location) {
				reg.Set(location, nil)
				submit = append(submit, location)
			}
			continue
		}

		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving path %q: %w", location, err)
		}
		if reg.Has(abs) {
			continue
		}

		if _, err := os.Stat(abs); err != nil {
			reg.Set(abs, []Finding{MissingFileFinding()})
			continue
		}
		reg.Set(abs, nil)
		submit = append(submit, abs)
	}

	return reg, submit, nil
}
