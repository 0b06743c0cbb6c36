package config

import (
	"fmt"
	"strings"

	"cukereport/internal/aggregate"
	"cukereport/internal/reporterr"
)

// Issue captures a validation problem with an option.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates option validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "options validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks required options and parses the duration unit and policy.
// Failures are returned as a configuration error naming the offending options.
func Validate(opts *Options) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if opts.JSONDir == "" {
		add(KeyJSONDir, "is required")
	}
	if opts.ReportPath == "" {
		add(KeyReportPath, "is required")
	}
	unit, err := aggregate.ParseUnit(opts.DurationUnit)
	if err != nil {
		add(KeyDurationUnit, err.Error())
	}
	policy, err := aggregate.ParsePolicy(opts.DurationAggregation)
	if err != nil {
		add(KeyDurationAggregation, err.Error())
	}
	if opts.Workers < 0 {
		add(KeyWorkers, "must not be negative")
	}

	if len(issues) > 0 {
		fields := make([]string, 0, len(issues))
		for _, issue := range issues {
			fields = append(fields, issue.Field)
		}
		return &reporterr.Error{
			Kind:    reporterr.KindConfig,
			Message: "invalid options",
			Path:    strings.Join(fields, ", "),
			Cause:   &ValidationError{Issues: issues},
		}
	}
	opts.Unit = unit
	opts.Policy = policy
	return nil
}
