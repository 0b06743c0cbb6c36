package cucumber

import (
	"path/filepath"
	"strings"
)

// OutlineLookup resolves an outline row to its template.
type OutlineLookup interface {
	Outline(uri string, rowLine int) (*OutlineTemplate, bool)
}

// FeatureSource lazily parses feature files under a root directory.
// Files that cannot be read or parsed are remembered as missing.
type FeatureSource struct {
	root   string
	parsed map[string]FeatureOutlines
	errs   map[string]error
}

// NewFeatureSource creates a source resolving feature uris against root.
// An empty root resolves relative to the working directory.
func NewFeatureSource(root string) *FeatureSource {
	return &FeatureSource{
		root:   root,
		parsed: make(map[string]FeatureOutlines),
		errs:   make(map[string]error),
	}
}

// Outline returns the template for the examples row at rowLine in uri.
func (s *FeatureSource) Outline(uri string, rowLine int) (*OutlineTemplate, bool) {
	if s == nil || strings.TrimSpace(uri) == "" || rowLine <= 0 {
		return nil, false
	}
	outlines := s.load(uri)
	if outlines == nil {
		return nil, false
	}
	template, ok := outlines[rowLine]
	return template, ok
}

// Err returns the parse error recorded for uri, if any.
func (s *FeatureSource) Err(uri string) error {
	return s.errs[s.resolve(uri)]
}

func (s *FeatureSource) load(uri string) FeatureOutlines {
	path := s.resolve(uri)
	if outlines, ok := s.parsed[path]; ok {
		return outlines
	}
	outlines, err := ParseFeatureFile(path)
	if err != nil {
		s.errs[path] = err
		outlines = nil
	}
	s.parsed[path] = outlines
	return outlines
}

// resolve maps a feature uri to a cleaned filesystem path.
func (s *FeatureSource) resolve(uri string) string {
	uri = strings.TrimPrefix(uri, "file://")
	path := filepath.FromSlash(uri)
	if filepath.IsAbs(path) || s.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(s.root, path))
}
