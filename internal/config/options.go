// Package config loads generator options from defaults, a config file, the
// environment and command-line flags.
package config

import (
	"cukereport/internal/aggregate"
	"cukereport/internal/cucumber"
)

// Option keys. Flags, config file keys and CUKEREPORT_* variables share them.
const (
	KeyJSONDir             = "json-dir"
	KeyReportPath          = "report-path"
	KeyFeaturesDir         = "features-dir"
	KeyMetadata            = "metadata"
	KeyMetadataFile        = "metadata-file"
	KeyCustomMetadata      = "custom-metadata"
	KeyCustomData          = "custom-data"
	KeyDisplayReportTime   = "display-report-time"
	KeyDisplayDuration     = "display-duration"
	KeyDurationInMS        = "duration-in-ms"
	KeyDurationUnit        = "duration-unit"
	KeyDurationAggregation = "duration-aggregation"
	KeySaveCollectedJSON   = "save-collected-json"
	KeyReportName          = "report-name"
	KeyPageTitle           = "page-title"
	KeyPageFooter          = "page-footer"
	KeyHideMetadata        = "hide-metadata"
	KeyRecursive           = "recursive"
	KeyWorkers             = "workers"
	KeyStableIDs           = "stable-ids"
	KeyDuckDB              = "duckdb"
	KeyMetricsFile         = "metrics-file"
	KeyLogLevel            = "log-level"
	KeyNoColor             = "no-color"
)

// Keys lists every option key.
var Keys = []string{
	KeyJSONDir, KeyReportPath, KeyFeaturesDir, KeyMetadata, KeyMetadataFile,
	KeyCustomMetadata, KeyCustomData, KeyDisplayReportTime, KeyDisplayDuration,
	KeyDurationInMS, KeyDurationUnit, KeyDurationAggregation, KeySaveCollectedJSON,
	KeyReportName, KeyPageTitle, KeyPageFooter, KeyHideMetadata, KeyRecursive,
	KeyWorkers, KeyStableIDs, KeyDuckDB, KeyMetricsFile, KeyLogLevel, KeyNoColor,
}

// Defaults for display options.
const (
	DefaultReportName = "Cucumber Report"
	DefaultPageTitle  = "Cucumber Report"
)

// Options is the full generator configuration.
type Options struct {
	JSONDir     string `mapstructure:"json-dir"`
	ReportPath  string `mapstructure:"report-path"`
	FeaturesDir string `mapstructure:"features-dir"`

	Metadata       any    `mapstructure:"metadata"`
	MetadataFile   string `mapstructure:"metadata-file"`
	CustomMetadata bool   `mapstructure:"custom-metadata"`
	CustomData     any    `mapstructure:"custom-data"`

	DisplayReportTime   bool   `mapstructure:"display-report-time"`
	DisplayDuration     bool   `mapstructure:"display-duration"`
	DurationInMS        bool   `mapstructure:"duration-in-ms"`
	DurationUnit        string `mapstructure:"duration-unit"`
	DurationAggregation string `mapstructure:"duration-aggregation"`
	SaveCollectedJSON   bool   `mapstructure:"save-collected-json"`

	ReportName   string `mapstructure:"report-name"`
	PageTitle    string `mapstructure:"page-title"`
	PageFooter   string `mapstructure:"page-footer"`
	HideMetadata bool   `mapstructure:"hide-metadata"`

	Recursive   bool   `mapstructure:"recursive"`
	Workers     int    `mapstructure:"workers"`
	StableIDs   bool   `mapstructure:"stable-ids"`
	DuckDB      string `mapstructure:"duckdb"`
	MetricsFile string `mapstructure:"metrics-file"`
	LogLevel    string `mapstructure:"log-level"`
	NoColor     bool   `mapstructure:"no-color"`

	// Resolved by Validate and ResolveMetadata.
	Unit             aggregate.Unit     `mapstructure:"-"`
	Policy           aggregate.Policy   `mapstructure:"-"`
	ResolvedMetadata *cucumber.Metadata `mapstructure:"-"`
	ResolvedCustom   *CustomData        `mapstructure:"-"`
}

// CustomData is an optional titled table shown on the overview page.
type CustomData struct {
	Title string          `json:"title"`
	Data  []CustomDataRow `json:"data"`
}

// CustomDataRow is one label/value row.
type CustomDataRow struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}
