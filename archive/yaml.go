package archive

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/posefile/errs"
)

type yamlEntry struct {
	Sizes []int     `yaml:"sizes,flow"`
	Data  []float32 `yaml:"data,flow"`
}

// yamlBackend stores the archive as a mapping keyed by array name. It serves both the
// ".yaml" and ".yml" extensions.
type yamlBackend struct {
	entries map[string]yamlEntry
}

func newYAMLBackend(data []byte) (Backend, error) {
	b := &yamlBackend{entries: map[string]yamlEntry{}}
	if data == nil {
		return b, nil
	}

	if err := yaml.Unmarshal(data, &b.entries); err != nil {
		return nil, fmt.Errorf("%w: yaml archive: %w", errs.ErrSchemaViolation, err)
	}

	if b.entries == nil {
		b.entries = map[string]yamlEntry{}
	}

	return b, nil
}

func (b *yamlBackend) WriteNamed(name string, e Entry) error {
	data := e.Data
	if data == nil {
		data = []float32{}
	}
	b.entries[name] = yamlEntry{Sizes: nonNilSizes(e.Sizes), Data: data}

	return nil
}

func (b *yamlBackend) ReadNamed(name string) (Entry, bool, error) {
	ye, ok := b.entries[name]
	if !ok {
		return Entry{}, false, nil
	}

	return Entry(ye), true, nil
}

func (b *yamlBackend) Encode() ([]byte, error) {
	out, err := yaml.Marshal(b.entries)
	if err != nil {
		return nil, fmt.Errorf("yaml archive: %w", err)
	}

	return out, nil
}
