package testutil

import (
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// WriteResults encodes features as a Cucumber JSON result file in dir.
func WriteResults(t testing.TB, dir, name string, features any) string {
	t.Helper()
	data, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return WriteFile(t, dir, name, string(data))
}

// CopyDir copies the fixture tree at src into a fresh temp directory and
// returns its path. Files are cloned where the platform supports it.
func CopyDir(t testing.TB, src string) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if cloneFile(path, target) == nil {
			return nil
		}
		return copyFile(path, target)
	})
	if err != nil {
		t.Fatalf("copy fixtures from %s: %v", src, err)
	}
	return dst
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
