package registry

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/modelaudit/pkg/errors"
)

// manifest is the on-disk form of a library surface, exported by a model
// library's build step when the library cannot link this package directly.
type manifest struct {
	Modules []manifestModule `yaml:"modules"`
}

type manifestModule struct {
	Name    string   `yaml:"name"`
	Classes []string `yaml:"classes"`
}

// LoadManifest reads a YAML manifest and returns the snapshot it describes.
// Ownership follows document order: the first module to list a class defines
// it, later occurrences are treated as re-exports.
func LoadManifest(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, errors.WrapIO("read", path, err)
	}
	return ParseManifest(path, data)
}

// ParseManifest parses manifest data. The path is only used in error messages.
func ParseManifest(path string, data []byte) (Snapshot, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Snapshot{}, errors.WrapParse("yaml", path, err)
	}

	r := New()
	for _, mod := range m.Modules {
		if mod.Name == "" {
			return Snapshot{}, &errors.ParseError{
				Format:  "yaml",
				File:    path,
				Message: "manifest module with empty name",
			}
		}
		r.Register(mod.Name, mod.Classes...)
	}
	return r.Snapshot(), nil
}
