// Package report builds the report model and renders it to static HTML.
package report

import (
	"cukereport/internal/aggregate"
	"cukereport/internal/config"
	"cukereport/internal/cucumber"
)

// GeneratedLayout formats the generation time shown in the report.
const GeneratedLayout = "2006/01/02 15:04:05"

// Display echoes the options that affect rendering.
type Display struct {
	ReportName          string             `json:"reportName"`
	PageTitle           string             `json:"pageTitle"`
	PageFooter          string             `json:"pageFooter,omitempty"`
	DisplayDuration     bool               `json:"displayDuration"`
	DisplayReportTime   bool               `json:"displayReportTime"`
	HideMetadata        bool               `json:"hideMetadata"`
	CustomMetadata      bool               `json:"customMetadata"`
	SaveCollectedJSON   bool               `json:"saveCollectedJSON"`
	DurationUnit        aggregate.Unit     `json:"durationUnit"`
	DurationAggregation aggregate.Policy   `json:"durationAggregation"`
	CustomData          *config.CustomData `json:"customData,omitempty"`
}

// Suite is the complete report model handed to rendering.
type Suite struct {
	*aggregate.Summary
	Display     Display `json:"display"`
	GeneratedAt string  `json:"generatedAt"`

	merged []byte
}

// NewDisplay copies the rendering options out of opts.
func NewDisplay(opts config.Options) Display {
	return Display{
		ReportName:          opts.ReportName,
		PageTitle:           opts.PageTitle,
		PageFooter:          opts.PageFooter,
		DisplayDuration:     opts.DisplayDuration,
		DisplayReportTime:   opts.DisplayReportTime,
		HideMetadata:        opts.HideMetadata,
		CustomMetadata:      opts.CustomMetadata,
		SaveCollectedJSON:   opts.SaveCollectedJSON,
		DurationUnit:        opts.Unit,
		DurationAggregation: opts.Policy,
		CustomData:          opts.ResolvedCustom,
	}
}

// Feature returns the feature with the given id.
func (s *Suite) Feature(id string) (*cucumber.Feature, bool) {
	if s == nil || s.Summary == nil {
		return nil, false
	}
	for _, feature := range s.Features {
		if feature.ID == id {
			return feature, true
		}
	}
	return nil, false
}
