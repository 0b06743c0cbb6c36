package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cukereport/internal/cucumber"
)

// MergedOutputFile is written to the report directory when collected JSON is saved.
const MergedOutputFile = "merged-output.json"

// EncodeJSON renders v with two-space indentation, unescaped HTML and a
// trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return buf.Bytes(), nil
}

// MergedJSON encodes the loaded, not yet aggregated features. A nil slice
// encodes as an empty list.
func MergedJSON(features []*cucumber.Feature) ([]byte, error) {
	if features == nil {
		features = []*cucumber.Feature{}
	}
	return EncodeJSON(features)
}
