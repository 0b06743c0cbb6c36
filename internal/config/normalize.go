package config

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"cukereport/internal/cucumber"
	"cukereport/internal/reporterr"
)

// Normalize trims paths, maps the legacy durationInMS switch onto the
// duration unit and fills display defaults.
func Normalize(opts *Options) {
	opts.JSONDir = strings.TrimSpace(opts.JSONDir)
	opts.ReportPath = strings.TrimSpace(opts.ReportPath)
	opts.FeaturesDir = strings.TrimSpace(opts.FeaturesDir)
	if strings.TrimSpace(opts.DurationUnit) == "" && opts.DurationInMS {
		opts.DurationUnit = "ms"
	}
	if opts.ReportName == "" {
		opts.ReportName = DefaultReportName
	}
	if opts.PageTitle == "" {
		opts.PageTitle = DefaultPageTitle
	}
}

// ResolveMetadata decodes the supplied metadata. A metadata file takes
// precedence over inline metadata; inline metadata may be a JSON string.
func ResolveMetadata(opts *Options) error {
	if opts.MetadataFile != "" {
		data, err := os.ReadFile(opts.MetadataFile)
		if err != nil {
			return &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot read metadata file", Path: opts.MetadataFile, Cause: err}
		}
		var value any
		if err := yaml.Unmarshal(data, &value); err != nil {
			return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid metadata file", Path: opts.MetadataFile, Cause: err}
		}
		md, err := cucumber.DecodeMetadata(value)
		if err != nil {
			return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid metadata file", Path: opts.MetadataFile, Cause: err}
		}
		opts.ResolvedMetadata = md
		return nil
	}

	value, err := decodeInline(opts.Metadata)
	if err != nil {
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid metadata", Path: KeyMetadata, Cause: err}
	}
	md, err := cucumber.DecodeMetadata(value)
	if err != nil {
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid metadata", Path: KeyMetadata, Cause: err}
	}
	opts.ResolvedMetadata = md
	return nil
}

func resolveCustomData(opts *Options) error {
	value, err := decodeInline(opts.CustomData)
	if err != nil {
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid custom data", Path: KeyCustomData, Cause: err}
	}
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid custom data", Path: KeyCustomData, Cause: err}
	}
	var custom CustomData
	if err := json.Unmarshal(data, &custom); err != nil {
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "invalid custom data", Path: KeyCustomData, Cause: err}
	}
	opts.ResolvedCustom = &custom
	return nil
}

// decodeInline accepts structured values as-is and parses JSON strings.
func decodeInline(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var out any
	if err := yaml.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return out, nil
}
