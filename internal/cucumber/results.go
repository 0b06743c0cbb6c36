package cucumber

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrEmptyResults is returned for payloads with no JSON content.
var ErrEmptyResults = errors.New("empty result payload")

// ParseResults parses a Cucumber JSON payload into feature records.
// A bare feature object is wrapped into a singleton list.
func ParseResults(data []byte) ([]*Feature, error) {
	data = cleanResultOutput(data)
	if len(data) == 0 {
		return nil, ErrEmptyResults
	}
	if data[0] == '{' {
		var feature Feature
		if err := json.Unmarshal(data, &feature); err != nil {
			return nil, err
		}
		return []*Feature{&feature}, nil
	}
	var features []*Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, err
	}
	out := features[:0]
	for _, feature := range features {
		if feature != nil {
			out = append(out, feature)
		}
	}
	return out, nil
}

// cleanResultOutput strips tool noise printed ahead of the JSON document.
func cleanResultOutput(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	stripped := stripANSICodes(data)
	stripped = bytes.TrimSpace(stripped)
	stripped = bytes.TrimPrefix(stripped, []byte("\xef\xbb\xbf"))
	if len(stripped) == 0 {
		return stripped
	}
	if stripped[0] == '[' || stripped[0] == '{' {
		return stripped
	}
	for i, b := range stripped {
		if b == '[' || b == '{' {
			return bytes.TrimSpace(stripped[i:])
		}
	}
	return stripped
}

// stripANSICodes removes ANSI escape sequences from output.
func stripANSICodes(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if data[i] == 0x1b && i+1 < len(data) && data[i+1] == '[' {
			i += 2
			for i < len(data) {
				ch := data[i]
				i++
				if ch >= 0x40 && ch <= 0x7e {
					break
				}
			}
			continue
		}
		out = append(out, data[i])
		i++
	}
	return out
}
