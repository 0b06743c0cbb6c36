package reportserver

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// DatabaseRoute is where the DuckDB export is served.
const DatabaseRoute = "/data/report.duckdb"

// NewHandler builds the HTTP handler for serving the report directory and
// DuckDB file.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ReportDir == "" {
		return nil, errors.New("reportserver: report dir is required")
	}
	info, err := os.Stat(cfg.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("reportserver: report dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reportserver: report dir %s is not a directory", cfg.ReportDir)
	}
	placeholder, err := placeholderPage()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", serveReport(cfg.ReportDir, placeholder))
	if cfg.DBPath != "" {
		mux.Handle(DatabaseRoute, serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveReport serves the generated pages, falling back to the placeholder
// while index.html does not exist.
func serveReport(dir string, placeholder []byte) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write(placeholder)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

// serveDatabase serves the DuckDB file from disk for download.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
