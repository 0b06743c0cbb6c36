package cucumber

import (
	"strconv"
	"strings"
	"unicode"
)

const outlineSeparator = ";;"

// OutlineKey identifies a scenario's outline group. Row is 0 for scenarios
// that are not outline rows; rows are numbered from 1.
type OutlineKey struct {
	BaseID string
	Row    int
}

// IsRow reports whether the key belongs to an outline row.
func (k OutlineKey) IsRow() bool {
	return k.Row > 0
}

// IsHead reports whether the key is the first row of its outline group.
func (k OutlineKey) IsHead() bool {
	return k.Row == 1
}

// SameGroup reports whether both keys are rows of the same outline.
func (k OutlineKey) SameGroup(other OutlineKey) bool {
	return k.IsRow() && other.IsRow() && k.BaseID == other.BaseID
}

// ParseOutlineKey derives the outline key from a scenario id of the form
// "<base>;;<n>".
func ParseOutlineKey(id string) OutlineKey {
	idx := strings.LastIndex(id, outlineSeparator)
	if idx < 0 {
		return OutlineKey{BaseID: id}
	}
	row, err := strconv.Atoi(id[idx+len(outlineSeparator):])
	if err != nil || row < 1 {
		return OutlineKey{BaseID: id}
	}
	return OutlineKey{BaseID: id[:idx], Row: row}
}

// ScenarioID derives a scenario id from feature and scenario names.
func ScenarioID(featureName, scenarioName string) string {
	return slug(featureName) + ";" + slug(scenarioName)
}

// slug lower-cases s and replaces whitespace and underscores with hyphens.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) || r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
