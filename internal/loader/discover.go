package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cukereport/internal/reporterr"
)

// Discover lists the *.json files in dir. A flat listing follows directory
// order; a recursive listing walks subdirectories in lexical order.
// An unreadable directory is a configuration error naming it.
func Discover(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot read JSON directory", Path: dir, Cause: err}
	}
	if !info.IsDir() {
		return nil, reporterr.Config(dir, "JSON directory is not a directory")
	}
	if recursive {
		return walkJSON(dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot read JSON directory", Path: dir, Cause: err}
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isJSONFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func walkJSON(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isJSONFile(entry.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot walk JSON directory", Path: dir, Cause: err}
	}
	return files, nil
}

func isJSONFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
