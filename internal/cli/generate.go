package cli

import (
	"context"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cukereport/internal/config"
	"cukereport/internal/duckdb"
	"cukereport/internal/logging"
	"cukereport/internal/metrics"
	"cukereport/internal/report"
	"cukereport/internal/reporterr"
)

func newGenerateCmd() *cobra.Command {
	v := config.NewViper()
	var configPath string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the HTML report from a directory of result files",
		Long: `Build the HTML report from every *.json file in --json-dir.

Options come from flags, CUKEREPORT_* environment variables and an optional
YAML config file, in that order of precedence.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, v, configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	addGenerateFlags(cmd.Flags())
	return cmd
}

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.String(config.KeyJSONDir, "", "Directory containing Cucumber JSON result files")
	flags.String(config.KeyReportPath, "", "Directory the report is written to")
	flags.String(config.KeyFeaturesDir, "", "Directory of .feature files used to restore outline templates")
	flags.String(config.KeyMetadata, "", "Default metadata as inline JSON or YAML")
	flags.String(config.KeyMetadataFile, "", "Default metadata from a YAML file")
	flags.Bool(config.KeyCustomMetadata, false, "Render metadata as free-form name/value pairs")
	flags.String(config.KeyCustomData, "", "Custom data table as inline JSON or YAML")
	flags.Bool(config.KeyDisplayReportTime, false, "Show each feature's result file time")
	flags.Bool(config.KeyDisplayDuration, true, "Show durations")
	flags.Bool(config.KeyDurationInMS, false, "Result durations are milliseconds (same as --duration-unit=ms)")
	flags.String(config.KeyDurationUnit, "", "Unit of result durations: ns or ms")
	flags.String(config.KeyDurationAggregation, "sum", "Feature duration policy: sum or wallClock")
	flags.Bool(config.KeySaveCollectedJSON, false, "Also write merged-output.json and enriched-output.json")
	flags.String(config.KeyReportName, config.DefaultReportName, "Report heading")
	flags.String(config.KeyPageTitle, config.DefaultPageTitle, "HTML page title")
	flags.String(config.KeyPageFooter, "", "Raw HTML footer")
	flags.Bool(config.KeyHideMetadata, false, "Hide feature metadata")
	flags.Bool(config.KeyRecursive, false, "Search --json-dir recursively")
	flags.Int(config.KeyWorkers, 0, "Parallel file readers (0 uses the CPU count)")
	flags.Bool(config.KeyStableIDs, false, "Derive ids from content for reproducible output")
	flags.String(config.KeyDuckDB, "", "Also export the suite to this DuckDB file")
	flags.String(config.KeyMetricsFile, "", "Write pipeline metrics in Prometheus textfile format")
	flags.String(config.KeyLogLevel, "", "Log level: debug, info or error")
	flags.Bool(config.KeyNoColor, false, "Disable colored console output")
}

func runGenerate(ctx context.Context, cmd *cobra.Command, v *viper.Viper, configPath string) error {
	opts, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	logger, sync, err := newLogger(opts.LogLevel)
	if err != nil {
		return reporterr.Wrap(err, "cannot create logger")
	}
	defer sync()
	logger.V(1).Info("options loaded", "options", opts.Summary())
	console := logging.NewConsole(cmd.ErrOrStderr(), opts.NoColor)

	var pipeline *metrics.Pipeline
	if opts.MetricsFile != "" {
		pipeline = metrics.NewPipeline(prometheus.NewRegistry())
	}

	suite, err := report.NewBuilder(opts, report.Deps{
		Logger:  logger,
		Console: console,
		Metrics: pipeline,
	}).Build(ctx)
	if err != nil {
		return err
	}
	written, err := report.Generate(ctx, suite, opts.ReportPath)
	if err != nil {
		return reporterr.Wrap(err, "cannot write report")
	}
	logger.Info("report written", "files", len(written), "path", opts.ReportPath)

	if opts.DuckDB != "" {
		result, err := duckdb.ExportFile(ctx, opts.DuckDB, duckdb.Run{Suite: suite})
		if err != nil {
			return reporterr.Wrap(err, "cannot export to duckdb")
		}
		logger.Info("duckdb export", "path", opts.DuckDB, "run", result.RunID, "created", result.Created)
	}
	if pipeline != nil {
		if err := pipeline.WriteTextfile(opts.MetricsFile); err != nil {
			return reporterr.Wrap(err, "cannot write metrics file")
		}
	}

	console.Successf("Cucumber report written to %s (%d features, %d scenarios)",
		filepath.Join(opts.ReportPath, report.IndexFile), suite.FeatureCount.Total, suite.ScenarioCount.Total)
	return nil
}
