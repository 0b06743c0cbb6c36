package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cukereport/internal/config"
	"cukereport/internal/reporterr"
	"cukereport/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

func newServeCmd() *cobra.Command {
	v := config.NewViper()
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a generated report over HTTP",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadFile(v, configPath); err != nil {
				return err
			}
			reportDir := v.GetString(config.KeyReportPath)
			if reportDir == "" {
				return reporterr.Config(config.KeyReportPath, "is required")
			}
			if addr == "" {
				return reporterr.Config("addr", "is required")
			}
			logger, sync, err := newLogger(v.GetString(config.KeyLogLevel))
			if err != nil {
				return reporterr.Wrap(err, "cannot create logger")
			}
			defer sync()

			out := cmd.OutOrStdout()
			err = serveReport(cmd.Context(), reportserver.Config{
				Addr:      addr,
				ReportDir: reportDir,
				DBPath:    v.GetString(config.KeyDuckDB),
				Logger:    logger,
				Ready: func(bound string) {
					fmt.Fprintf(out, "Serving report at http://%s\n", bound)
				},
			})
			if err != nil {
				return reporterr.Wrap(err, "server error")
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&addr, "addr", "127.0.0.1:5000", "Address to listen on")
	flags.String(config.KeyReportPath, "", "Directory containing the generated report")
	flags.String(config.KeyDuckDB, "", "DuckDB export served at "+reportserver.DatabaseRoute)
	flags.String(config.KeyLogLevel, "", "Log level: debug, info or error")
	return cmd
}
