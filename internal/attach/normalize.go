// Package attach normalizes step embeddings and arguments into typed buckets.
package attach

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"cukereport/internal/cucumber"
	"cukereport/internal/reporterr"
)

// MIME types with dedicated buckets.
const (
	MimeJSON  = "application/json"
	MimeHTML  = "text/html"
	MimeText  = "text/plain"
	MimePNG   = "image/png"
)

// Normalize fills the step's typed buckets from its embeddings, doc string and
// data table. scopeID is the owning scenario id; newID supplies the random part
// of doc string ids. Malformed embedded JSON is returned as a data error.
func Normalize(step *cucumber.Step, scopeID string, newID func() string) error {
	if step == nil {
		return nil
	}
	if err := normalizeEmbeddings(step); err != nil {
		return err
	}
	if doc, ok := docString(step); ok {
		step.ID = SanitizeID(fmt.Sprintf("%s.%s.%s", newID(), scopeID, step.Name))
		step.RestWireData = RestWireData(doc)
	}
	if rows := tableRows(step); len(rows) > 0 {
		step.TableHTML = TableHTML(rows)
	}
	return nil
}

// normalizeEmbeddings rebuilds the text, html and json buckets. Image and
// attachment slots are cleared once moved, so those buckets keep what earlier
// passes collected and only grow from slots still holding data.
func normalizeEmbeddings(step *cucumber.Step) error {
	step.Text = nil
	step.HTML = nil
	step.JSON = nil
	for i, embedding := range step.Embeddings {
		mime := embedding.Type()
		switch {
		case len(embedding.Data) == 0 && mime == "":
			continue
		case isJSONType(mime):
			value, err := decodeJSON(embedding)
			if err != nil {
				return reporterr.Data(fmt.Sprintf("step %q embedding %d", step.Name, i), "malformed embedded JSON", err)
			}
			step.JSON = append(step.JSON, value)
		case mime == MimeHTML:
			step.HTML = append(step.HTML, DecodeIfBase64(embedding.DataString()))
		case mime == MimeText || mime == "":
			step.Text = append(step.Text, EscapeHTML(DecodeIfBase64(embedding.DataString())))
		case mime == MimePNG:
			step.Image = append(step.Image, "data:image/png;base64,"+embedding.DataString())
			step.Embeddings[i] = cucumber.Embedding{}
		default:
			step.Attachments = append(step.Attachments, cucumber.Attachment{
				Data: "data:" + mime + ";base64," + embedding.DataString(),
				Type: mime,
			})
			step.Embeddings[i] = cucumber.Embedding{}
		}
	}
	return nil
}

func isJSONType(mime string) bool {
	return mime == MimeJSON || strings.HasSuffix(mime, "+json")
}

// decodeJSON parses string payloads as JSON and passes structured payloads
// through. Base64-wrapped JSON strings are accepted.
func decodeJSON(embedding cucumber.Embedding) (any, error) {
	if !embedding.IsString() {
		var value any
		if err := json.Unmarshal(embedding.Data, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
	text := embedding.DataString()
	var value any
	err := json.Unmarshal([]byte(text), &value)
	if err == nil {
		return value, nil
	}
	if decoded := DecodeIfBase64(text); decoded != text {
		if json.Unmarshal([]byte(decoded), &value) == nil {
			return value, nil
		}
	}
	return nil, err
}

// docString returns the doc string value from either the cucumber-jvm field or
// a cucumber-js argument.
func docString(step *cucumber.Step) (string, bool) {
	if step.DocString != nil {
		return step.DocString.Value, true
	}
	for _, arg := range step.Arguments {
		if arg.Content != "" {
			return arg.Content, true
		}
	}
	return "", false
}

func tableRows(step *cucumber.Step) []cucumber.Row {
	if len(step.Rows) > 0 {
		return step.Rows
	}
	for _, arg := range step.Arguments {
		if len(arg.Rows) > 0 {
			return arg.Rows
		}
	}
	return nil
}

// RestWireData renders a multi-line doc string as a <br/>-joined fragment.
func RestWireData(value string) string {
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br/>")
}

// TableHTML renders data table rows as an inline HTML table.
func TableHTML(rows []cucumber.Row) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
