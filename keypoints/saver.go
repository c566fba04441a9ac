package keypoints

import (
	"fmt"
	"os"
	"sync"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/pathutil"
)

// documentExtension is appended to every file the Saver writes.
const documentExtension = "json"

// Saver writes people documents into one directory.
//
// Files are named after the caller's frame name, or after the saver's running counter
// rendered as a 12-digit zero-padded number when no name is given. A Saver is safe for
// concurrent use.
type Saver struct {
	dir string
	cfg *WriterConfig

	mu      sync.Mutex
	counter uint64
}

// NewSaver creates a Saver writing into dir, creating the directory if needed.
func NewSaver(dir string, opts ...WriterOption) (*Saver, error) {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return nil, err
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create output directory %s: %w", errs.ErrIO, dir, err)
		}
	}

	return &Saver{dir: dir, cfg: cfg}, nil
}

// Dir returns the output directory.
func (s *Saver) Dir() string {
	return s.dir
}

// Count returns the number of documents saved so far.
func (s *Saver) Count() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counter
}

// Save writes <dir>/<fileName>.json and returns its path. An empty fileName is replaced by
// the current counter value.
func (s *Saver) Save(entries []Entry, candidates [][]Candidate, fileName string, humanReadable bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fileName == "" {
		fileName = pathutil.IndexName(s.counter)
	}

	return s.saveLocked(entries, candidates, fileName, humanReadable)
}

// SaveIndex writes <dir>/<index>.json, index rendered as 12 zero-padded digits, and returns
// its path.
func (s *Saver) SaveIndex(entries []Entry, candidates [][]Candidate, index uint64, humanReadable bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(entries, candidates, pathutil.IndexName(index), humanReadable)
}

func (s *Saver) saveLocked(entries []Entry, candidates [][]Candidate, fileName string, humanReadable bool) (string, error) {
	path := pathutil.Join(s.dir, pathutil.FullName(fileName, documentExtension))

	if err := s.cfg.saveDocument(path, entries, candidates, humanReadable); err != nil {
		return "", err
	}

	s.counter++

	return path, nil
}
