// Package metrics exposes Prometheus collectors for report generation runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons recorded by FilesSkipped.
const (
	SkipParseError = "parse_error"
	SkipEmpty      = "empty"
	SkipUnreadable = "unreadable"
)

// Pipeline holds the collectors for one generator run.
// A nil *Pipeline is valid and records nothing.
type Pipeline struct {
	registry *prometheus.Registry

	// FilesLoaded counts result files parsed successfully.
	FilesLoaded prometheus.Counter
	// FilesSkipped counts result files that contributed nothing, by reason.
	FilesSkipped *prometheus.CounterVec
	// Features counts features by suite classification.
	Features *prometheus.CounterVec
	// Scenarios counts scenarios by governing status.
	Scenarios *prometheus.CounterVec
	// Steps counts classified steps by status.
	Steps *prometheus.CounterVec
	// BuildDurationSeconds records how long the report model took to build.
	BuildDurationSeconds prometheus.Gauge
	// LastRunTimestamp records when the report was generated.
	LastRunTimestamp prometheus.Gauge
}

// NewPipeline creates the collectors and registers them on reg.
func NewPipeline(reg *prometheus.Registry) *Pipeline {
	p := &Pipeline{
		registry: reg,
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cukereport_files_loaded_total",
			Help: "Total number of result files parsed successfully",
		}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cukereport_files_skipped_total",
			Help: "Total number of result files skipped by reason",
		}, []string{"reason"}),
		Features: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cukereport_features_total",
			Help: "Total number of features by status",
		}, []string{"status"}),
		Scenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cukereport_scenarios_total",
			Help: "Total number of scenarios by status",
		}, []string{"status"}),
		Steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cukereport_steps_total",
			Help: "Total number of counted steps by status",
		}, []string{"status"}),
		BuildDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cukereport_build_duration_seconds",
			Help: "Duration of the last report model build in seconds",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cukereport_last_run_timestamp",
			Help: "Unix timestamp of the last report generation",
		}),
	}
	reg.MustRegister(p.FilesLoaded, p.FilesSkipped, p.Features, p.Scenarios, p.Steps,
		p.BuildDurationSeconds, p.LastRunTimestamp)
	return p
}

// RecordFileLoaded increments the loaded files counter.
func (p *Pipeline) RecordFileLoaded() {
	if p == nil {
		return
	}
	p.FilesLoaded.Inc()
}

// RecordFileSkipped increments the skipped files counter for reason.
func (p *Pipeline) RecordFileSkipped(reason string) {
	if p == nil {
		return
	}
	p.FilesSkipped.WithLabelValues(reason).Inc()
}

// RecordFeature counts one feature with the given status.
func (p *Pipeline) RecordFeature(status string) {
	if p == nil {
		return
	}
	p.Features.WithLabelValues(status).Inc()
}

// RecordScenario counts one scenario with the given status.
func (p *Pipeline) RecordScenario(status string) {
	if p == nil {
		return
	}
	p.Scenarios.WithLabelValues(status).Inc()
}

// RecordStep counts one step with the given status.
func (p *Pipeline) RecordStep(status string) {
	if p == nil {
		return
	}
	p.Steps.WithLabelValues(status).Inc()
}

// RecordBuild sets the build duration and last run timestamp.
func (p *Pipeline) RecordBuild(d time.Duration) {
	if p == nil {
		return
	}
	p.BuildDurationSeconds.Set(d.Seconds())
	p.LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes the registry in node-exporter textfile format.
func (p *Pipeline) WriteTextfile(path string) error {
	if p == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
