package cucumber

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NotKnown is the placeholder for metadata a producer did not record.
const NotKnown = "not known"

const reportTimeKey = "reportTime"

// MetadataKind tags which input shape a Metadata value was decoded from.
type MetadataKind int

const (
	// KeyedMetadata is the {browser, device, platform, ...} object form.
	KeyedMetadata MetadataKind = iota
	// NameValueList is the [{name, value}, ...] form used with custom metadata.
	NameValueList
)

// NameVersion is a named, versioned component such as a browser or platform.
type NameVersion struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// MetadataEntry is one name/value pair.
type MetadataEntry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Metadata is the canonical run metadata resolved from either input shape.
// It marshals back in the shape it was decoded from.
type Metadata struct {
	Kind       MetadataKind
	Browser    *NameVersion
	Device     string
	Platform   *NameVersion
	App        *NameVersion
	ReportTime string
	Entries    []MetadataEntry
	Extra      map[string]any
}

// DefaultMetadata returns the structure injected into records without metadata.
func DefaultMetadata() *Metadata {
	return &Metadata{
		Kind:     KeyedMetadata,
		Browser:  &NameVersion{Name: NotKnown, Version: NotKnown},
		Device:   NotKnown,
		Platform: &NameVersion{Name: NotKnown, Version: NotKnown},
	}
}

// DecodeMetadata converts a loosely typed value (from config or YAML) into Metadata.
func DecodeMetadata(value any) (*Metadata, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(normalizeYAML(value))
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}

// Clone returns a deep copy.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Browser = cloneNameVersion(m.Browser)
	out.Platform = cloneNameVersion(m.Platform)
	out.App = cloneNameVersion(m.App)
	if m.Entries != nil {
		out.Entries = append([]MetadataEntry(nil), m.Entries...)
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// Pairs returns display rows for either shape.
func (m *Metadata) Pairs() []MetadataEntry {
	if m == nil {
		return nil
	}
	if m.Kind == NameValueList {
		out := append([]MetadataEntry(nil), m.Entries...)
		if m.ReportTime != "" {
			out = append(out, MetadataEntry{Name: "Report Time", Value: m.ReportTime})
		}
		return out
	}
	out := make([]MetadataEntry, 0, 5+len(m.Extra))
	if m.Browser != nil {
		out = append(out, MetadataEntry{Name: "Browser", Value: joinNameVersion(m.Browser)})
	}
	if m.Device != "" {
		out = append(out, MetadataEntry{Name: "Device", Value: m.Device})
	}
	if m.Platform != nil {
		out = append(out, MetadataEntry{Name: "Platform", Value: joinNameVersion(m.Platform)})
	}
	if m.App != nil {
		out = append(out, MetadataEntry{Name: "App", Value: joinNameVersion(m.App)})
	}
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, MetadataEntry{Name: k, Value: m.Extra[k]})
	}
	if m.ReportTime != "" {
		out = append(out, MetadataEntry{Name: "Report Time", Value: m.ReportTime})
	}
	return out
}

// UnmarshalJSON resolves the object or list shape.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*m = Metadata{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		return m.unmarshalList(trimmed)
	}
	return m.unmarshalKeyed(trimmed)
}

func (m *Metadata) unmarshalList(data []byte) error {
	var entries []MetadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("metadata list: %w", err)
	}
	m.Kind = NameValueList
	m.Entries = make([]MetadataEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == reportTimeKey {
			m.ReportTime = fmt.Sprint(entry.Value)
			continue
		}
		m.Entries = append(m.Entries, entry)
	}
	return nil
}

func (m *Metadata) unmarshalKeyed(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("metadata object: %w", err)
	}
	m.Kind = KeyedMetadata
	for key, raw := range fields {
		switch key {
		case "browser":
			m.Browser = decodeNameVersion(raw)
		case "platform":
			m.Platform = decodeNameVersion(raw)
		case "app":
			m.App = decodeNameVersion(raw)
		case "device":
			m.Device = decodeText(raw)
		case reportTimeKey:
			m.ReportTime = decodeText(raw)
		default:
			var value any
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("metadata %s: %w", key, err)
			}
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = value
		}
	}
	return nil
}

// MarshalJSON writes the shape the metadata was decoded from.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.Kind == NameValueList {
		entries := append([]MetadataEntry{}, m.Entries...)
		if m.ReportTime != "" {
			entries = append(entries, MetadataEntry{Name: reportTimeKey, Value: m.ReportTime})
		}
		return json.Marshal(entries)
	}
	out := make(map[string]any, len(m.Extra)+5)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Browser != nil {
		out["browser"] = m.Browser
	}
	if m.Device != "" {
		out["device"] = m.Device
	}
	if m.Platform != nil {
		out["platform"] = m.Platform
	}
	if m.App != nil {
		out["app"] = m.App
	}
	if m.ReportTime != "" {
		out[reportTimeKey] = m.ReportTime
	}
	return json.Marshal(out)
}

func decodeNameVersion(raw json.RawMessage) *NameVersion {
	var nv NameVersion
	if err := json.Unmarshal(raw, &nv); err == nil {
		return &nv
	}
	if text := decodeText(raw); text != "" {
		return &NameVersion{Name: text}
	}
	return nil
}

func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func cloneNameVersion(nv *NameVersion) *NameVersion {
	if nv == nil {
		return nil
	}
	out := *nv
	return &out
}

func joinNameVersion(nv *NameVersion) string {
	return strings.TrimSpace(nv.Name + " " + nv.Version)
}

// normalizeYAML converts map[any]any values, which encoding/json rejects, into
// map[string]any.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[fmt.Sprint(k)] = normalizeYAML(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = normalizeYAML(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = normalizeYAML(v[i])
		}
		return out
	default:
		return v
	}
}
