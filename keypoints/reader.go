package keypoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/fsutil"
)

// ReadDocument parses a people document of any version.
//
// The version may be a JSON string or number. "part_candidates" is accepted both as an
// object and as an array holding a single object, the form older writers produced. null
// values read back as NaN. Unknown top-level keys are skipped.
//
// Malformed documents fail with errs.ErrSchemaViolation; read failures wrap errs.ErrIO.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read people document: %w", errs.ErrIO, err)
	}

	return parseDocument(data)
}

// LoadDocument reads and parses the document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

func parseDocument(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{', "document"); err != nil {
		return nil, err
	}

	doc := &Document{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case keyVersion:
			doc.Version, err = readVersion(dec)
		case keyPeople:
			doc.People, err = readPeople(dec)
		case keyPartCandidates:
			doc.PartCandidates, err = readCandidates(dec)
		default:
			var skip json.RawMessage
			err = decodeValue(dec, &skip, key)
		}

		if err != nil {
			return nil, err
		}
	}

	if err := expectDelim(dec, '}', "document"); err != nil {
		return nil, err
	}

	return doc, nil
}

func readVersion(dec *json.Decoder) (string, error) {
	tok, err := token(dec)
	if err != nil {
		return "", err
	}

	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: version must be a string or number, got %v", errs.ErrSchemaViolation, tok)
	}
}

func readPeople(dec *json.Decoder) ([]Person, error) {
	if err := expectDelim(dec, '[', keyPeople); err != nil {
		return nil, err
	}

	people := []Person{}
	for dec.More() {
		if err := expectDelim(dec, '{', "person"); err != nil {
			return nil, err
		}

		var p Person
		for dec.More() {
			name, err := readKey(dec)
			if err != nil {
				return nil, err
			}

			values, err := readFloats(dec, name)
			if err != nil {
				return nil, err
			}
			p.Fields = append(p.Fields, Field{Name: name, Values: values})
		}

		if err := expectDelim(dec, '}', "person"); err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	if err := expectDelim(dec, ']', keyPeople); err != nil {
		return nil, err
	}

	return people, nil
}

func readCandidates(dec *json.Decoder) (map[int][]Candidate, error) {
	tok, err := token(dec)
	if err != nil {
		return nil, err
	}

	switch tok {
	case json.Delim('{'):
		return readCandidateObject(dec)
	case json.Delim('['):
		// legacy form: [ {"0": [...], ...} ]
		out := map[int][]Candidate{}
		for dec.More() {
			if err := expectDelim(dec, '{', keyPartCandidates); err != nil {
				return nil, err
			}

			parts, err := readCandidateObject(dec)
			if err != nil {
				return nil, err
			}
			for part, list := range parts {
				if prev, ok := out[part]; ok {
					list = append(prev, list...)
				}
				out[part] = list
			}
		}

		if err := expectDelim(dec, ']', keyPartCandidates); err != nil {
			return nil, err
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be an object, got %v", errs.ErrSchemaViolation, keyPartCandidates, tok)
	}
}

// readCandidateObject reads the members of an already opened candidates object.
func readCandidateObject(dec *json.Decoder) (map[int][]Candidate, error) {
	out := map[int][]Candidate{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		part, err := strconv.Atoi(key)
		if err != nil || part < 0 {
			return nil, fmt.Errorf("%w: part index %q is not a non-negative integer", errs.ErrSchemaViolation, key)
		}

		values, err := readFloats(dec, key)
		if err != nil {
			return nil, err
		}

		if len(values)%3 != 0 {
			return nil, fmt.Errorf("%w: part %d holds %d values, want a multiple of 3",
				errs.ErrSchemaViolation, part, len(values))
		}

		list := make([]Candidate, 0, len(values)/3)
		for i := 0; i < len(values); i += 3 {
			list = append(list, Candidate{X: values[i], Y: values[i+1], Score: values[i+2]})
		}
		out[part] = list
	}

	if err := expectDelim(dec, '}', keyPartCandidates); err != nil {
		return nil, err
	}

	return out, nil
}

func readFloats(dec *json.Decoder, field string) ([]float32, error) {
	var raw []*json.Number
	if err := decodeValue(dec, &raw, field); err != nil {
		return nil, err
	}

	values := make([]float32, len(raw))
	for i, n := range raw {
		if n == nil {
			values[i] = float32(math.NaN())
			continue
		}

		f, err := strconv.ParseFloat(n.String(), 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s[%d]: %w", errs.ErrSchemaViolation, field, i, err)
		}
		values[i] = float32(f)
	}

	return values, nil
}

func decodeValue(dec *json.Decoder, v any, field string) error {
	if err := dec.Decode(v); err != nil {
		return classify(fmt.Errorf("field %q: %w", field, err))
	}

	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := token(dec)
	if err != nil {
		return "", err
	}

	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected an object key, got %v", errs.ErrSchemaViolation, tok)
	}

	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, what string) error {
	tok, err := token(dec)
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: %s: expected %q, got %v", errs.ErrSchemaViolation, what, want, tok)
	}

	return nil
}

func token(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, classify(err)
	}

	return tok, nil
}

// classify marks a decoder failure as a schema violation. The input is fully buffered
// before decoding, so every decoder error describes the document itself.
func classify(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrSchemaViolation, err)
}
