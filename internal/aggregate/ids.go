package aggregate

import "github.com/google/uuid"

// IDSource produces the unique prefix for feature and doc string ids.
// seed identifies the item being named.
type IDSource func(seed string) string

// RandomIDs returns a fresh random UUID per call.
func RandomIDs() IDSource {
	return func(string) string {
		return uuid.NewString()
	}
}

// StableIDs derives a name-based UUID from the seed, so identical input yields
// identical ids across runs.
func StableIDs() IDSource {
	return func(seed string) string {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte("cukereport:"+seed)).String()
	}
}
