package aggregate

import (
	"github.com/go-logr/logr"

	"cukereport/internal/cucumber"
	"cukereport/internal/logging"
	"cukereport/internal/metrics"
)

// Options configures an Aggregator. Zero values select nanoseconds, the sum
// policy, random ids and no outline templates.
type Options struct {
	Unit     Unit
	Policy   Policy
	Outlines cucumber.OutlineLookup
	IDs      IDSource
	Metrics  *metrics.Pipeline
	Logger   logr.Logger
	// Console receives one warning per feature file whose outline templates
	// could not be read.
	Console logging.Warner
}

// Aggregator runs the enrichment passes over loaded features.
type Aggregator struct {
	opts       Options
	warnedURIs map[string]struct{}
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	if opts.Unit == "" {
		opts.Unit = Nanoseconds
	}
	if opts.Policy == "" {
		opts.Policy = Sum
	}
	if opts.IDs == nil {
		opts.IDs = RandomIDs()
	}
	return &Aggregator{opts: opts, warnedURIs: make(map[string]struct{})}
}
