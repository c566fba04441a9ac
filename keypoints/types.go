package keypoints

import (
	"github.com/arloliu/posefile/ndarray"
)

// DocumentVersion is the version tag written into every document.
const DocumentVersion = "1.3"

// Document keys.
const (
	keyVersion        = "version"
	keyPeople         = "people"
	keyPartCandidates = "part_candidates"
)

// Entry is one named keypoint set, e.g. "pose_keypoints_2d".
//
// Array must be empty, 1-D, or 3-D shaped [person, part, channel].
type Entry struct {
	Array *ndarray.Array
	Name  string
}

// Candidate is one unassociated detection of a body part.
type Candidate struct {
	X     float32
	Y     float32
	Score float32
}

// Field is one named keypoint array of a person, in document order.
type Field struct {
	Name   string
	Values []float32
}

// Person is one object of the "people" array.
type Person struct {
	Fields []Field
}

// Get returns the values of the named field.
func (p Person) Get(name string) ([]float32, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Values, true
		}
	}

	return nil, false
}

// Names returns the field names in document order.
func (p Person) Names() []string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}

	return names
}

// Document is a parsed people document.
type Document struct {
	// Version is the version tag as written, e.g. "1.3".
	Version string
	People  []Person
	// PartCandidates maps a part index to its candidates. It is nil when the document has
	// no "part_candidates" field.
	PartCandidates map[int][]Candidate
}

// NumberPeople returns len(d.People).
func (d *Document) NumberPeople() int {
	return len(d.People)
}
