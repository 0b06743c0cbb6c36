package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	duckdbdriver "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"cukereport/internal/aggregate"
	"cukereport/internal/cucumber"
	"cukereport/internal/report"
)

// Run is one built suite to export.
type Run struct {
	// ID is the run UUID. A random one is assigned when empty.
	ID          string
	CollectedAt time.Time
	Suite       *report.Suite
}

// Result describes an export.
type Result struct {
	RunID       string
	Fingerprint string
	// Created is false when a run with the same fingerprint already existed
	// and nothing was written.
	Created bool
}

// SuiteFingerprint hashes the aggregated suite and its display options. The
// generation time is not part of the fingerprint.
func SuiteFingerprint(suite *report.Suite) (string, error) {
	if suite == nil || suite.Summary == nil {
		return "", errors.New("duckdb: suite is nil")
	}
	return FingerprintJSON(map[string]any{
		"summary": suite.Summary,
		"display": suite.Display,
	})
}

// Export writes the run and its features, scenarios and steps in one
// transaction. Exporting a suite whose fingerprint is already stored returns
// the existing run id.
func Export(ctx context.Context, db *sql.DB, run Run) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return Result{}, errors.New("duckdb: db is nil")
	}
	suite := run.Suite
	if suite == nil || suite.Summary == nil {
		return Result{}, errors.New("duckdb: suite is nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else {
		parsed, err := uuid.Parse(run.ID)
		if err != nil {
			return Result{}, fmt.Errorf("duckdb: run id: %w", err)
		}
		run.ID = parsed.String()
	}
	if run.CollectedAt.IsZero() {
		run.CollectedAt = time.Now()
	}
	fingerprint, err := SuiteFingerprint(suite)
	if err != nil {
		return Result{}, err
	}
	display, err := CanonicalJSON(suite.Display)
	if err != nil {
		return Result{}, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return Result{}, fmt.Errorf("apply schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("begin export: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	features, scenarios := suite.FeatureCount, suite.ScenarioCount
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO report_runs (
		  run_id, fingerprint, report_name, generated_at, duration_unit, duration_policy,
		  features_total, features_passed, features_failed, features_ambiguous,
		  scenarios_total, scenarios_passed, scenarios_failed, scenarios_pending,
		  scenarios_skipped, scenarios_undefined, scenarios_ambiguous,
		  total_duration, total_time, display, collected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO NOTHING`,
		run.ID, fingerprint, suite.Display.ReportName, nullableString(suite.GeneratedAt),
		string(suite.Display.DurationUnit), string(suite.Display.DurationAggregation),
		features.Total, features.Passed, features.Failed, features.Ambiguous,
		scenarios.Total, scenarios.Passed, scenarios.Failed, scenarios.Pending,
		scenarios.Skipped, scenarios.NotDefined, scenarios.Ambiguous,
		suite.TotalDuration, nullableString(suite.TotalTime), string(display), run.CollectedAt.UTC(),
	); err != nil {
		return Result{}, fmt.Errorf("insert run: %w", err)
	}
	storedID, err := lookupID(ctx, tx, "report_runs", "run_id", "fingerprint", fingerprint)
	if err != nil {
		return Result{}, fmt.Errorf("lookup run id: %w", err)
	}
	result := Result{RunID: storedID, Fingerprint: fingerprint, Created: storedID == run.ID}
	if result.Created {
		if err := insertFeatures(ctx, tx, run.ID, suite.Features); err != nil {
			return Result{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("commit export: %w", err)
	}
	committed = true
	return result, nil
}

func insertFeatures(ctx context.Context, tx *sql.Tx, runID string, features []*cucumber.Feature) error {
	featureStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO features (
		  run_id, position, feature_id, uri, name, status, scenarios,
		  passed, failed, pending, skipped, undefined, ambiguous, duration, time, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare features: %w", err)
	}
	defer featureStmt.Close()
	stepStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO steps (
		  run_id, feature_position, scenario_position, position, keyword, name,
		  hidden, status, duration, error_message, location
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare steps: %w", err)
	}
	defer stepStmt.Close()

	for fi, feature := range features {
		tally := cucumber.Tally{}
		if feature.Scenarios != nil {
			tally = *feature.Scenarios
		}
		var metadata any
		if feature.Metadata != nil {
			encoded, err := CanonicalJSON(feature.Metadata)
			if err != nil {
				return fmt.Errorf("feature %q metadata: %w", feature.Name, err)
			}
			metadata = string(encoded)
		}
		if _, err := featureStmt.ExecContext(ctx,
			runID, fi, feature.ID, nullableString(feature.URI), feature.Name,
			string(aggregate.FeatureStatus(feature)), tally.Total,
			tally.Passed, tally.Failed, tally.Pending, tally.Skipped, tally.NotDefined, tally.Ambiguous,
			feature.Duration, nullableString(feature.Time), metadata,
		); err != nil {
			return fmt.Errorf("insert feature %q: %w", feature.Name, err)
		}
		for si, scenario := range feature.Elements {
			if err := insertScenario(ctx, tx, runID, fi, si, scenario); err != nil {
				return err
			}
			for pi, step := range scenario.Steps {
				if step == nil {
					continue
				}
				if _, err := stepStmt.ExecContext(ctx, stepArgs(runID, fi, si, pi, step)...); err != nil {
					return fmt.Errorf("insert step %q: %w", step.Name, err)
				}
			}
		}
	}
	return nil
}

func insertScenario(ctx context.Context, tx *sql.Tx, runID string, fi, si int, scenario *cucumber.Scenario) error {
	tags := make([]string, 0, len(scenario.Tags))
	for _, tag := range scenario.Tags {
		tags = append(tags, tag.Name)
	}
	counts := scenario.Counts()
	query := fmt.Sprintf(
		`INSERT INTO scenarios (
		  run_id, feature_position, position, scenario_id, keyword, name, is_background, status,
		  passed, failed, pending, skipped, undefined, ambiguous, duration, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, %s)`,
		listExpression(tags),
	)
	if _, err := tx.ExecContext(ctx, query,
		runID, fi, si, scenario.ID, nullableString(scenario.Keyword), scenario.Name,
		scenario.IsBackground(), string(counts.Governing()),
		counts.Passed, counts.Failed, counts.Pending, counts.Skipped, counts.NotDefined, counts.Ambiguous,
		scenario.Duration,
	); err != nil {
		return fmt.Errorf("insert scenario %q: %w", scenario.Name, err)
	}
	return nil
}

func stepArgs(runID string, fi, si, pi int, step *cucumber.Step) []any {
	var status any
	var duration int64
	var errorMessage string
	if parsed, ok := step.Status(); ok {
		status = string(parsed)
		duration = int64(step.Result.Duration)
		errorMessage = step.Result.ErrorMessage
	}
	var location string
	if step.Match != nil {
		location = step.Match.Location
	}
	return []any{
		runID, fi, si, pi, nullableString(step.Keyword), nullableString(step.Name),
		step.Hidden, status, duration, nullableString(errorMessage), nullableString(location),
	}
}

// Open opens a DuckDB database file, creating its directory when needed.
// An empty path or ":memory:" opens an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ""
	}
	if dsn != "" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create duckdb dir: %w", err)
		}
	}
	connector, err := duckdbdriver.NewConnector(dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb %s: %w", path, err)
	}
	return db, nil
}

// ExportFile opens the database at path, exports run and closes it.
func ExportFile(ctx context.Context, path string, run Run) (Result, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return Result{}, err
	}
	defer db.Close()
	return Export(ctx, db, run)
}
