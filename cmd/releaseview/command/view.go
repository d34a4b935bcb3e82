package command

import (
	"sort"

	"github.com/juspay/airborne-cli/internal/api/airborne"
)

var viewColumns = [][]string{
	{"id", "ID"},
	{"name", "Name"},
	{"dimensions", "Dimensions"},
	{"updated_at", "Updated"},
}

// viewDimensions turns --dimension pairs into filters ordered by key.
func viewDimensions(m map[string]string) []airborne.ReleaseViewDimension {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]airborne.ReleaseViewDimension, 0, len(keys))
	for _, k := range keys {
		out = append(out, airborne.ReleaseViewDimension{Key: k, Value: m[k]})
	}
	return out
}
