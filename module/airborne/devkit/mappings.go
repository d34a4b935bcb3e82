package devkit

import (
	"path/filepath"
	"sync"

	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/util/common/fileutil"
)

// Mapping links a local file to the server file record created for it.
type Mapping struct {
	ID       string `json:"id"`
	Checksum string `json:"checksum"`
}

// Mappings is the .airborne/mappings.json cache: tag -> file_path ->
// mapping. Untagged files live under airborne.DefaultTag. Safe for
// concurrent use.
type Mappings struct {
	path string
	mu   sync.Mutex
	data map[string]map[string]Mapping
}

// MappingsPath returns the mappings file for the project in dir.
func MappingsPath(dir string) string {
	return filepath.Join(dir, ".airborne", "mappings.json")
}

// LoadMappings reads the project's mappings. A missing file is an empty
// cache.
func LoadMappings(dir string) (*Mappings, error) {
	m := &Mappings{path: MappingsPath(dir), data: map[string]map[string]Mapping{}}
	if !fileutil.IsFile(m.path) {
		return m, nil
	}
	if err := fileutil.ReadJSON(m.path, &m.data); err != nil {
		return nil, err
	}
	if m.data == nil {
		m.data = map[string]map[string]Mapping{}
	}
	return m, nil
}

func tagKey(tag string) string {
	if tag == "" {
		return airborne.DefaultTag
	}
	return tag
}

// Get returns the mapping for filePath under tag.
func (m *Mappings) Get(tag, filePath string) (Mapping, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[tagKey(tag)][filePath]
	return v, ok
}

// Set records a mapping and persists the cache.
func (m *Mappings) Set(tag, filePath string, v Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := tagKey(tag)
	if m.data[k] == nil {
		m.data[k] = map[string]Mapping{}
	}
	m.data[k][filePath] = v
	return fileutil.WriteJSON(m.path, m.data)
}
