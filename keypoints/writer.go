package keypoints

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/collision"
	"github.com/arloliu/posefile/internal/fsutil"
	"github.com/arloliu/posefile/jsonstream"
	"github.com/arloliu/posefile/pkg/logger"
	"github.com/arloliu/posefile/pkg/metrics"
)

// WriteDocument renders entries and candidates as a people document and writes it to w.
//
// The document is rendered in memory first: if any entry is neither empty, 1-D nor 3-D the
// call fails with errs.ErrSchemaViolation and nothing reaches w. Write failures wrap
// errs.ErrIO.
//
// humanReadable only changes whitespace.
func WriteDocument(w io.Writer, entries []Entry, candidates [][]Candidate, humanReadable bool, opts ...WriterOption) error {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return err
	}

	_, err = cfg.writeDocument(w, entries, candidates, humanReadable)

	return err
}

// SaveDocument writes the document to path, replacing any existing file.
func SaveDocument(path string, entries []Entry, candidates [][]Candidate, humanReadable bool, opts ...WriterOption) error {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return err
	}

	return cfg.saveDocument(path, entries, candidates, humanReadable)
}

// Validate checks that every non-empty entry is 1-D or 3-D.
func Validate(entries []Entry) error {
	for i, e := range entries {
		if e.Array.Empty() {
			continue
		}

		if n := e.Array.NumDims(); n != 1 && n != 3 {
			return fmt.Errorf("%w: entry %d (%q) has %d dimensions %v, want 1 or 3",
				errs.ErrSchemaViolation, i, e.Name, n, e.Array.Dims())
		}
	}

	return nil
}

// NumberPeople returns the number of person objects a document built from entries holds:
// the largest first dimension among non-empty 3-D entries. An entry such as [3, 0, 3]
// holds no keypoints and adds no people.
func NumberPeople(entries []Entry) int {
	people := 0
	for _, e := range entries {
		if e.Array.NumDims() == 3 && !e.Array.Empty() {
			people = max(people, e.Array.SizeAt(0))
		}
	}

	return people
}

func (c *WriterConfig) saveDocument(path string, entries []Entry, candidates [][]Candidate, humanReadable bool) error {
	var written int64
	err := fsutil.WriteWith(path, func(w io.Writer) error {
		n, err := c.writeDocument(w, entries, candidates, humanReadable)
		written = n

		return err
	})

	ctx := context.Background()
	if err != nil {
		c.logger.Error(ctx, "save people document failed", logger.String("path", path), logger.Error(err))
		return err
	}

	c.metrics.RecordBytesWritten(metrics.ComponentKeypoints, int(written))
	c.logger.Debug(ctx, "saved people document",
		logger.String("path", path),
		logger.Int("people", NumberPeople(entries)),
		logger.Int("bytes", int(written)),
	)

	return nil
}

func (c *WriterConfig) writeDocument(w io.Writer, entries []Entry, candidates [][]Candidate, humanReadable bool) (int64, error) {
	if err := Validate(entries); err != nil {
		c.metrics.RecordErrorByComponent(metrics.ComponentKeypoints, metrics.ErrorType(err))
		return 0, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	if dups := collision.Duplicates(names); len(dups) > 0 {
		c.logger.Warn(context.Background(), "duplicate keypoint entry names", logger.Any("names", dups))
	}

	jw := jsonstream.NewWriter(humanReadable)
	defer jw.Release()
	jw.SetPrecision(c.precision)

	jw.ObjectOpen()
	jw.Version(DocumentVersion)
	jw.Comma()
	jw.Enter()

	writePeople(jw, entries)

	if len(candidates) > 0 {
		jw.Comma()
		jw.Enter()
		writeCandidates(jw, candidates)
	}

	jw.ObjectClose()

	n, err := jw.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("%w: write people document: %w", errs.ErrIO, err)
		c.metrics.RecordErrorByComponent(metrics.ComponentKeypoints, metrics.ErrorType(err))

		return n, err
	}

	c.metrics.RecordDocumentWritten()

	return n, nil
}

func writePeople(jw *jsonstream.Writer, entries []Entry) {
	numberPeople := NumberPeople(entries)

	jw.Key(keyPeople)
	jw.ArrayOpen()
	for person, _n := 0, numberPeople; person < _n; person++ {
		jw.ObjectOpen()
		for i, e := range entries {
			jw.Key(e.Name)
			writeFloats(jw, personSlice(e, person))
			if i < len(entries)-1 {
				jw.Comma()
				jw.Enter()
			}
		}
		jw.ObjectClose()

		if person < numberPeople-1 {
			jw.Comma()
			jw.Enter()
		}
	}
	jw.ArrayClose()
}

// personSlice returns the values entry e contributes to person p.
func personSlice(e Entry, p int) []float32 {
	a := e.Array
	if a.Empty() {
		return nil
	}

	switch a.NumDims() {
	case 1:
		return a.Data()
	case 3:
		perPerson := a.SizeAt(1) * a.SizeAt(2)
		if perPerson == 0 || p >= a.SizeAt(0) {
			return nil
		}
		start := p * perPerson

		return a.Data()[start : start+perPerson]
	default:
		return nil
	}
}

func writeCandidates(jw *jsonstream.Writer, candidates [][]Candidate) {
	jw.Key(keyPartCandidates)
	jw.ObjectOpen()
	for part, list := range candidates {
		jw.Key(strconv.Itoa(part))
		jw.ArrayOpen()
		for i, c := range list {
			jw.Float(c.X)
			jw.Comma()
			jw.Float(c.Y)
			jw.Comma()
			jw.Float(c.Score)
			if i < len(list)-1 {
				jw.Comma()
			}
		}
		jw.ArrayClose()

		if part < len(candidates)-1 {
			jw.Comma()
			jw.Enter()
		}
	}
	jw.ObjectClose()
}

func writeFloats(jw *jsonstream.Writer, values []float32) {
	jw.ArrayOpen()
	for i, v := range values {
		if i > 0 {
			jw.Comma()
		}
		jw.Float(v)
	}
	jw.ArrayClose()
}
