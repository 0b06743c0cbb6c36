package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"cukereport/internal/aggregate"
	"cukereport/internal/cucumber"
)

const stylesheet = `body{font-family:sans-serif;margin:0;color:#333}
header,footer{background:#2a3f54;color:#fff;padding:12px 24px}
main{padding:16px 24px}
table{border-collapse:collapse;width:100%}
td,th{border:1px solid #ddd;padding:4px 8px;text-align:left}
.charts{display:flex;gap:32px}
.legend{list-style:none;padding:0}
.swatch{display:inline-block;width:10px;height:10px;margin-right:4px}
.status-passed{color:#26b99a}.status-failed{color:#e74c3c}.status-ambiguous{color:#b73122}
.status-pending{color:#ffd119}.status-skipped{color:#3498db}.status-notDefined{color:#f39c12}
.scenario{border:1px solid #ddd;margin:12px 0;padding:8px}
.step{margin:4px 0}.step .time{float:right;color:#999}
pre{background:#f7f7f7;padding:8px;overflow:auto}
.doc-string{font-family:monospace;background:#f7f7f7;padding:8px}`

func esc(s string) string {
	return templ.EscapeString(s)
}

// layout wraps body in the shared page chrome.
func layout(display Display, generatedAt, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>")
		b.WriteString(esc(title))
		b.WriteString("</title><style>")
		b.WriteString(stylesheet)
		b.WriteString("</style></head><body><header><h1>")
		b.WriteString(esc(display.ReportName))
		b.WriteString("</h1></header><main>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		b.WriteString("</main><footer>")
		if display.PageFooter != "" {
			b.WriteString(display.PageFooter)
		} else {
			b.WriteString("Generated " + esc(generatedAt))
		}
		b.WriteString("</footer></body></html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// IndexPage renders the suite overview.
func IndexPage(suite *Suite) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="charts">`)
		b.WriteString(donutChart("Features", suite.FeatureCount, featureStatuses))
		b.WriteString(donutChart("Scenarios", suite.ScenarioCount, cucumber.Priority))
		b.WriteString(`</section>`)
		if suite.Display.DisplayDuration {
			b.WriteString(`<p class="total-time">Total time: ` + esc(suite.TotalTime) + `</p>`)
		}
		writeCustomData(&b, suite.Display)
		writeFeatureTable(&b, suite)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout(suite.Display, suite.GeneratedAt, suite.Display.PageTitle, body)
}

func writeCustomData(b *strings.Builder, display Display) {
	custom := display.CustomData
	if custom == nil || len(custom.Data) == 0 {
		return
	}
	b.WriteString(`<section class="custom-data"><h2>` + esc(custom.Title) + `</h2><table>`)
	for _, row := range custom.Data {
		b.WriteString(`<tr><th>` + esc(row.Label) + `</th><td>` + esc(fmt.Sprint(row.Value)) + `</td></tr>`)
	}
	b.WriteString(`</table></section>`)
}

func writeFeatureTable(b *strings.Builder, suite *Suite) {
	display := suite.Display
	b.WriteString(`<section><h2>Features overview</h2><table class="features"><thead><tr><th>Status</th><th>Feature</th>`)
	if !display.HideMetadata {
		b.WriteString(`<th>Metadata</th>`)
	}
	if display.DisplayDuration {
		b.WriteString(`<th>Duration</th>`)
	}
	b.WriteString(`<th>Total</th><th>Passed</th><th>Failed</th><th>Ambiguous</th><th>Pending</th><th>Not defined</th><th>Skipped</th></tr></thead><tbody>`)
	for _, feature := range suite.Features {
		status := aggregate.FeatureStatus(feature)
		tally := cucumber.Tally{}
		if feature.Scenarios != nil {
			tally = *feature.Scenarios
		}
		fmt.Fprintf(b, `<tr class="feature status-%s"><td>%s</td><td><a href="features/%s.html">%s</a></td>`,
			status, status, esc(feature.ID), esc(feature.Name))
		if !display.HideMetadata {
			b.WriteString(`<td>` + metadataInline(feature.Metadata) + `</td>`)
		}
		if display.DisplayDuration {
			b.WriteString(`<td>` + esc(feature.Time) + `</td>`)
		}
		fmt.Fprintf(b, `<td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			tally.Total, tally.Passed, tally.Failed, tally.Ambiguous, tally.Pending, tally.NotDefined, tally.Skipped)
	}
	b.WriteString(`</tbody></table></section>`)
}

func metadataInline(md *cucumber.Metadata) string {
	pairs := md.Pairs()
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, esc(pair.Name)+": "+esc(fmt.Sprint(pair.Value)))
	}
	return strings.Join(parts, "<br />")
}

// FeaturePage renders one feature with its scenarios and steps.
func FeaturePage(suite *Suite, feature *cucumber.Feature) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		display := suite.Display
		status := aggregate.FeatureStatus(feature)
		b.WriteString(`<p><a href="../index.html">&larr; Overview</a></p>`)
		fmt.Fprintf(&b, `<h2 class="status-%s">%s %s</h2>`, status, esc(feature.Keyword), esc(feature.Name))
		writeTags(&b, feature.Tags)
		if desc := descriptionHTML(feature.Description); desc != "" {
			b.WriteString(`<p class="description">` + desc + `</p>`)
		}
		if !display.HideMetadata {
			b.WriteString(`<table class="metadata">`)
			for _, pair := range feature.Metadata.Pairs() {
				b.WriteString(`<tr><th>` + esc(pair.Name) + `</th><td>` + esc(fmt.Sprint(pair.Value)) + `</td></tr>`)
			}
			b.WriteString(`</table>`)
		}
		if feature.Scenarios != nil {
			b.WriteString(`<section class="charts">`)
			b.WriteString(donutChart("Scenarios", *feature.Scenarios, cucumber.Priority))
			b.WriteString(`</section>`)
		}
		if display.DisplayDuration {
			b.WriteString(`<p class="feature-time">Duration: ` + esc(feature.Time) + `</p>`)
		}
		for _, scenario := range feature.Elements {
			writeScenario(&b, display, scenario)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
	return layout(suite.Display, suite.GeneratedAt, feature.Name+" - "+suite.Display.PageTitle, body)
}

func writeTags(b *strings.Builder, tags []cucumber.Tag) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(`<p class="tags">`)
	for i, tag := range tags {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(`<span class="tag">` + esc(tag.Name) + `</span>`)
	}
	b.WriteString(`</p>`)
}

func writeScenario(b *strings.Builder, display Display, scenario *cucumber.Scenario) {
	status := scenario.Counts().Governing()
	fmt.Fprintf(b, `<div class="scenario status-%s" id="%s"><h3>%s: %s`, status, esc(scenario.ID), esc(scenario.Keyword), esc(scenario.Name))
	if display.DisplayDuration && scenario.Time != "" {
		b.WriteString(` <span class="time">` + esc(scenario.Time) + `</span>`)
	}
	b.WriteString(`</h3>`)
	writeTags(b, scenario.Tags)
	if desc := descriptionHTML(scenario.Description); desc != "" {
		b.WriteString(`<p class="description">` + desc + `</p>`)
	}
	for _, step := range scenario.Steps {
		if step != nil && Visible(step) {
			writeStep(b, display, step)
		}
	}
	for _, examples := range scenario.Examples {
		writeExamples(b, examples)
	}
	b.WriteString(`</div>`)
}

// Visible reports whether a step is rendered. Failed steps are always shown;
// otherwise hidden or result-less steps need visible content.
func Visible(step *cucumber.Step) bool {
	if status, ok := step.Status(); ok && status == cucumber.StatusFailed {
		return true
	}
	if step.Result != nil && !step.Hidden {
		return true
	}
	return len(step.Text) > 0 || len(step.Image) > 0 || len(step.Attachments) > 0
}

func writeStep(b *strings.Builder, display Display, step *cucumber.Step) {
	status, ok := step.Status()
	if !ok {
		status = cucumber.StatusSkipped
	}
	fmt.Fprintf(b, `<div class="step status-%s"><strong>%s</strong> %s`, status, esc(strings.TrimSpace(step.Keyword)), esc(step.Name))
	if display.DisplayDuration && step.Time != "" {
		b.WriteString(`<span class="time">` + esc(step.Time) + `</span>`)
	}
	if step.RestWireData != "" {
		b.WriteString(`<div class="doc-string" id="` + esc(step.ID) + `">` + step.RestWireData + `</div>`)
	}
	if step.TableHTML != "" {
		b.WriteString(`<div class="data-table">` + step.TableHTML + `</div>`)
	}
	if step.Result != nil && step.Result.ErrorMessage != "" {
		b.WriteString(`<pre class="error">` + esc(step.Result.ErrorMessage) + `</pre>`)
	}
	for _, text := range step.Text {
		b.WriteString(`<pre class="text">` + text + `</pre>`)
	}
	for _, fragment := range step.HTML {
		b.WriteString(`<div class="html">` + fragment + `</div>`)
	}
	for _, value := range step.JSON {
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			continue
		}
		b.WriteString(`<pre class="json">` + esc(string(pretty)) + `</pre>`)
	}
	for _, src := range step.Image {
		b.WriteString(`<img class="screenshot" alt="screenshot" src="` + esc(src) + `">`)
	}
	for i, attachment := range step.Attachments {
		fmt.Fprintf(b, `<a class="attachment" download="attachment-%d" href="%s">%s</a>`, i+1, esc(attachment.Data), esc(attachment.Type))
	}
	b.WriteString(`</div>`)
}

func writeExamples(b *strings.Builder, examples cucumber.ExamplesTable) {
	b.WriteString(`<div class="examples"><h4>Examples`)
	if examples.Name != "" {
		b.WriteString(": " + esc(examples.Name))
	}
	b.WriteString(`</h4><table><thead><tr>`)
	for _, cell := range examples.Header {
		b.WriteString(`<th>` + esc(cell) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range examples.Rows {
		b.WriteString(`<tr>`)
		for _, cell := range row {
			b.WriteString(`<td>` + esc(cell) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
}
