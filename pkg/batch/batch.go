// Package batch interprets stream-mode input: it decides whether stdin
// carries JSON documents or bare MAC address lines, and extracts the
// addresses each JSON line asks for.
package batch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode identifies how an input stream is interpreted.
type Mode int

const (
	// ModeJSON treats every input line as a JSON document.
	ModeJSON Mode = iota
	// ModeBare treats every input line as a single MAC address.
	ModeBare
)

// Classify decides the mode for an entire stream up front. A stream is JSON
// only when every non-empty line is a well-formed JSON document; a single
// odd line demotes the whole stream to bare address lines. Classifying
// before processing keeps the two interpretations from mixing mid-stream.
func Classify(input string) Mode {
	for _, line := range strings.Split(input, "\n") {
		if len(line) == 0 {
			continue
		}
		if !json.Valid([]byte(line)) {
			return ModeBare
		}
	}
	return ModeJSON
}

// ParseLine extracts the MAC addresses a JSON input line asks for.
//
// Three document shapes are understood:
//
//	{"mac": ["aa:...", "bb:..."]}   object with a list of addresses
//	{"mac": "aa:..."}               object with a single address
//	[{"mac": "aa:..."}, ...]        list of objects with one address each
//
// Any other JSON document (a number, bare string, boolean, or null) is not
// a query; ParseLine reports ok=false and the caller skips the line. A
// document of a query shape with missing or mistyped fields is an error.
func ParseLine(line string) (macs []string, ok bool, err error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return nil, false, err
	}

	switch v := doc.(type) {
	case map[string]interface{}:
		raw, present := v["mac"]
		if !present {
			return nil, false, fmt.Errorf(`object has no "mac" field`)
		}
		switch m := raw.(type) {
		case string:
			return []string{m}, true, nil
		case []interface{}:
			macs := make([]string, 0, len(m))
			for _, e := range m {
				s, isString := e.(string)
				if !isString {
					return nil, false, fmt.Errorf(`"mac" list holds a non-string element: %v`, e)
				}
				macs = append(macs, s)
			}
			return macs, true, nil
		default:
			return nil, false, fmt.Errorf(`"mac" field is %T, want a string or a list of strings`, raw)
		}

	case []interface{}:
		macs := make([]string, 0, len(v))
		for _, e := range v {
			obj, isObject := e.(map[string]interface{})
			if !isObject {
				return nil, false, fmt.Errorf("list element is not an object: %v", e)
			}
			raw, present := obj["mac"]
			if !present {
				return nil, false, fmt.Errorf(`list element has no "mac" field`)
			}
			s, isString := raw.(string)
			if !isString {
				return nil, false, fmt.Errorf(`"mac" field is %T, want a string`, raw)
			}
			macs = append(macs, s)
		}
		return macs, true, nil

	default:
		return nil, false, nil
	}
}
