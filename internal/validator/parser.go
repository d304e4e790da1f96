package validator

import (
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

const urlKey = "url"

// payload is the JSON document produced by the validator with "--format json".
type payload struct {
	Messages *[]map[string]any `json:"messages"`
}

// ParseResult is a partial registry built from one validator invocation.
type ParseResult struct {
	Registry *Registry
	Dropped  int // Messages not matching any submitted location
}

// Parse distributes validator messages from raw into a registry covering
// exactly the submitted locations. Entries already present in seed are kept
// and new messages are appended after them.
func Parse(submitted []string, raw []byte, seed *Registry) (ParseResult, error) {
	if seed == nil {
		seed = NewRegistry()
	}
	partial := seed.Subset(submitted)

	// trailing output after the document is rejected too
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ParseResult{}, wrapMalformedPayload(err)
	}
	if p.Messages == nil {
		return ParseResult{}, wrapMalformedPayload(errors.New(`missing "messages" array`))
	}

	index := make(map[string]struct{}, len(submitted))
	for _, location := range submitted {
		index[location] = struct{}{}
	}

	dropped := 0
	for _, msg := range *p.Messages {
		key, _ := msg[urlKey].(string)
		location, ok := matchLocation(index, key)
		if !ok {
			dropped++
			continue
		}

		finding := make(Finding, len(msg))
		for k, v := range msg {
			if k == urlKey {
				continue
			}
			finding[k] = v
		}
		partial.Append(location, finding)
	}

	return ParseResult{Registry: partial, Dropped: dropped}, nil
}

// matchLocation finds the submitted location a message url refers to.
// Local files are reported as file: URLs, in any of the forms file:/abs,
// file:///abs or file://localhost/abs, percent-escaped or not.
func matchLocation(index map[string]struct{}, key string) (string, bool) {
	if _, ok := index[key]; ok {
		return key, true
	}
	if !strings.HasPrefix(key, "file:") {
		return "", false
	}

	u, err := url.Parse(key)
	if err != nil || u.Path == "" || (u.Host != "" && u.Host != "localhost") {
		return "", false
	}
	path := filepath.FromSlash(u.Path)
	if !filepath.IsAbs(path) {
		return "", false
	}
	if _, ok := index[path]; !ok {
		return "", false
	}
	return path, true
}
