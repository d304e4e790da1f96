package validator

import (
	"bytes"
	"encoding/json"
	"iter"
)

// Finding is one message reported for a location, as emitted by the validator tool.
type Finding map[string]any

// Entry is a single registry item. A nil Findings means the location is clean.
type Entry struct {
	Location string
	Findings []Finding
}

// Registry is an ordered mapping of locations to their findings. Keys keep the
// order of their first insertion. It is not safe for concurrent use.
type Registry struct {
	order   []string
	entries map[string][]Finding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string][]Finding),
	}
}

// Set stores findings for location, adding the key at the end if absent.
func (r *Registry) Set(location string, findings []Finding) {
	if _, ok := r.entries[location]; !ok {
		r.order = append(r.order, location)
	}
	r.entries[location] = findings
}

// Append adds findings to location, turning a clean entry into a finding list.
func (r *Registry) Append(location string, findings ...Finding) {
	r.Set(location, append(r.entries[location], findings...))
}

// Get returns findings of location and whether it is known.
func (r *Registry) Get(location string) ([]Finding, bool) {
	findings, ok := r.entries[location]
	return findings, ok
}

// Has reports whether location is a registry key.
func (r *Registry) Has(location string) bool {
	_, ok := r.entries[location]
	return ok
}

// Locations returns registry keys in order.
func (r *Registry) Locations() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of locations.
func (r *Registry) Len() int {
	return len(r.order)
}

// FindingsCount returns the total number of findings over all locations.
func (r *Registry) FindingsCount() int {
	n := 0
	for _, location := range r.order {
		n += len(r.entries[location])
	}
	return n
}

// All iterates over locations and findings in order.
func (r *Registry) All() iter.Seq2[string, []Finding] {
	return func(yield func(string, []Finding) bool) {
		for _, location := range r.order {
			if !yield(location, r.entries[location]) {
				return
			}
		}
	}
}

// Entries returns the registry content as an ordered slice.
func (r *Registry) Entries() []Entry {
	ret := make([]Entry, 0, len(r.order))
	for location, findings := range r.All() {
		ret = append(ret, Entry{Location: location, Findings: findings})
	}
	return ret
}

// Subset returns a copy restricted to locations, in the given order. Locations
// unknown to r are added as clean.
func (r *Registry) Subset(locations []string) *Registry {
	ret := NewRegistry()
	for _, location := range locations {
		ret.Set(location, cloneFindings(r.entries[location]))
	}
	return ret
}

// Clone returns a deep enough copy: finding lists are copied, findings are shared.
func (r *Registry) Clone() *Registry {
	return r.Subset(r.order)
}

// Merge overwrites entries of r with the ones from other. New keys are
// appended in the order of other.
func (r *Registry) Merge(other *Registry) {
	for location, findings := range other.All() {
		r.Set(location, findings)
	}
}

// MarshalJSON encodes the registry as a JSON object keeping key order.
// Clean locations are encoded as null.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, location := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(location)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(r.entries[location])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func cloneFindings(findings []Finding) []Finding {
	if findings == nil {
		return nil
	}
	return append([]Finding(nil), findings...)
}
