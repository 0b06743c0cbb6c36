package cucumber

import (
	"bytes"
	"encoding/json"
	"math"
)

// Feature is one feature record from a Cucumber JSON result file.
// Fields below Elements are filled by aggregation and omitted until then.
type Feature struct {
	ID          string      `json:"id"`
	URI         string      `json:"uri,omitempty"`
	Keyword     string      `json:"keyword,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Line        int         `json:"line,omitempty"`
	Tags        []Tag       `json:"tags,omitempty"`
	Metadata    *Metadata   `json:"metadata,omitempty"`
	Elements    []*Scenario `json:"elements,omitempty"`

	Scenarios   *Tally `json:"scenarios,omitempty"`
	IsFailed    bool   `json:"isFailed,omitempty"`
	IsAmbiguous bool   `json:"isAmbiguous,omitempty"`
	Time        string `json:"time,omitempty"`
	Duration    int64  `json:"duration,omitempty"`
}

// Scenario is one scenario, background or expanded outline row.
type Scenario struct {
	ID             string  `json:"id"`
	Keyword        string  `json:"keyword,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Line           int     `json:"line,omitempty"`
	Type           string  `json:"type,omitempty"`
	Tags           []Tag   `json:"tags,omitempty"`
	StartTimestamp string  `json:"start_timestamp,omitempty"`
	Before         []Hook  `json:"before,omitempty"`
	After          []Hook  `json:"after,omitempty"`
	Steps          []*Step `json:"steps"`

	// Outline is derived from ID at load time.
	Outline OutlineKey `json:"-"`

	*StatusCounts
	Time     string          `json:"time,omitempty"`
	Duration int64           `json:"duration,omitempty"`
	Examples []ExamplesTable `json:"examples,omitempty"`
}

// IsBackground reports whether the element is a Background block.
func (s *Scenario) IsBackground() bool {
	return s.Type == "background" || s.Keyword == "Background"
}

// Counts returns the scenario counters, zero when not yet aggregated.
func (s *Scenario) Counts() StatusCounts {
	if s.StatusCounts == nil {
		return StatusCounts{}
	}
	return *s.StatusCounts
}

// Step is one executed step or a synthetic hook step.
type Step struct {
	Keyword    string      `json:"keyword"`
	Name       string      `json:"name"`
	Line       int         `json:"line,omitempty"`
	Hidden     bool        `json:"hidden,omitempty"`
	Arguments  []Argument  `json:"arguments,omitempty"`
	Rows       []Row       `json:"rows,omitempty"`
	DocString  *DocString  `json:"doc_string,omitempty"`
	Match      *Match      `json:"match,omitempty"`
	Result     *Result     `json:"result,omitempty"`
	Embeddings []Embedding `json:"embeddings,omitempty"`

	ID           string       `json:"id,omitempty"`
	Text         []string     `json:"text,omitempty"`
	HTML         []string     `json:"html,omitempty"`
	JSON         []any        `json:"json,omitempty"`
	Image        []string     `json:"image,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	RestWireData string       `json:"restWireData,omitempty"`
	TableHTML    string       `json:"tableHtml,omitempty"`
	Time         string       `json:"time,omitempty"`
}

// Status returns the parsed result status, or false when no result exists.
func (s *Step) Status() (Status, bool) {
	if s.Result == nil {
		return "", false
	}
	return ParseStatus(s.Result.Status), true
}

// Result is a step outcome.
type Result struct {
	Status       string      `json:"status"`
	Duration     RawDuration `json:"duration,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// RawDuration is a duration in the producer's unit. Fractional values are rounded.
type RawDuration int64

// UnmarshalJSON accepts integer and floating point durations.
func (d *RawDuration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = RawDuration(math.Round(f))
	return nil
}

// Match locates the step definition.
type Match struct {
	Location string `json:"location,omitempty"`
}

// Hook is a before/after hook record attached to a scenario.
type Hook struct {
	Match      *Match      `json:"match,omitempty"`
	Result     *Result     `json:"result,omitempty"`
	Embeddings []Embedding `json:"embeddings,omitempty"`
	Arguments  []Argument  `json:"arguments,omitempty"`
}

// Embedding is a raw attachment. Older producers write mime_type, newer ones media.type.
// A cleared embedding marshals as {}.
type Embedding struct {
	MimeType string          `json:"mime_type,omitempty"`
	Media    *Media          `json:"media,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Media carries the modern MIME type field.
type Media struct {
	Type string `json:"type,omitempty"`
}

// Type returns the embedding MIME type from whichever field is set.
func (e Embedding) Type() string {
	if e.MimeType != "" {
		return e.MimeType
	}
	if e.Media != nil {
		return e.Media.Type
	}
	return ""
}

// DataString returns the payload as text. JSON strings are unquoted; other
// JSON values are returned verbatim.
func (e Embedding) DataString() string {
	if len(e.Data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Data, &s); err == nil {
		return s
	}
	return string(e.Data)
}

// IsString reports whether the payload is a JSON string.
func (e Embedding) IsString() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// Attachment is a normalized catch-all attachment.
type Attachment struct {
	Data string `json:"data"`
	Type string `json:"type"`
}

// Row is a data table row.
type Row struct {
	Cells []string `json:"cells"`
}

// DocString is a step doc string argument.
type DocString struct {
	Value       string `json:"value"`
	ContentType string `json:"content_type,omitempty"`
	Line        int    `json:"line,omitempty"`
}

// Argument is the cucumber-js step argument form: a doc string content or table rows.
type Argument struct {
	Content string `json:"content,omitempty"`
	Line    int    `json:"line,omitempty"`
	Rows    []Row  `json:"rows,omitempty"`
}

// Tag is a feature or scenario tag.
type Tag struct {
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
}

// ExamplesTable is an outline examples block restored from the feature file.
type ExamplesTable struct {
	Name   string     `json:"name,omitempty"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}
