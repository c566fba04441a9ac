package archive

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/posefile/errs"
)

// jsonFloat is a float32 that survives JSON: non-finite values are written as the strings
// "nan", "inf" and "-inf".
type jsonFloat float32

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"nan"`), nil
	case math.IsInf(v, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-inf"`), nil
	default:
		return []byte(formatFloat(float32(f))), nil
	}
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	v, err := parseFloat(s)
	if err != nil {
		return err
	}
	*f = jsonFloat(v)

	return nil
}

type jsonEntry struct {
	Sizes []int       `json:"sizes"`
	Data  []jsonFloat `json:"data"`
}

// jsonBackend stores the archive as one object keyed by array name.
type jsonBackend struct {
	entries map[string]jsonEntry
}

func newJSONBackend(data []byte) (Backend, error) {
	b := &jsonBackend{entries: map[string]jsonEntry{}}
	if data == nil {
		return b, nil
	}

	if err := json.Unmarshal(data, &b.entries); err != nil {
		return nil, fmt.Errorf("%w: json archive: %w", errs.ErrSchemaViolation, err)
	}

	return b, nil
}

func (b *jsonBackend) WriteNamed(name string, e Entry) error {
	data := make([]jsonFloat, len(e.Data))
	for i, v := range e.Data {
		data[i] = jsonFloat(v)
	}
	b.entries[name] = jsonEntry{Sizes: nonNilSizes(e.Sizes), Data: data}

	return nil
}

func (b *jsonBackend) ReadNamed(name string) (Entry, bool, error) {
	je, ok := b.entries[name]
	if !ok {
		return Entry{}, false, nil
	}

	data := make([]float32, len(je.Data))
	for i, v := range je.Data {
		data[i] = float32(v)
	}

	return Entry{Sizes: je.Sizes, Data: data}, true, nil
}

func (b *jsonBackend) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(b.entries, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("json archive: %w", err)
	}

	return append(out, '\n'), nil
}

func nonNilSizes(sizes []int) []int {
	if sizes == nil {
		return []int{}
	}

	return sizes
}
