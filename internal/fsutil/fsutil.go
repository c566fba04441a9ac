// Package fsutil writes files through a uniquely named sibling temp file.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arloliu/posefile/errs"
)

const defaultFileMode = 0o644

// TempName returns a hidden sibling of path that no other writer will pick.
func TempName(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
}

// WriteFile writes data to path. The bytes land in a temp sibling first and are renamed
// over path once fully written, so readers never observe a half-written file. Concurrent
// writers to the same path each rename in turn; the last one wins.
//
// Failures wrap errs.ErrIO.
func WriteFile(path string, data []byte) error {
	return WriteWith(path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%w: write %s: %w", errs.ErrIO, path, err)
		}

		return nil
	})
}

// WriteWith is WriteFile for streaming producers. fn must not retain w. An error from fn is
// returned unchanged and discards the temp file; fn is expected to wrap write failures
// with errs.ErrIO itself.
func WriteWith(path string, fn func(w io.Writer) error) (err error) {
	tmp := TempName(path)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", errs.ErrIO, path, err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = fn(f); err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", errs.ErrIO, path, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", errs.ErrIO, path, err)
	}

	return nil
}

// ReadFile reads path. A missing file wraps errs.ErrFileNotFound and errs.ErrIO; any other
// failure wraps errs.ErrIO.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w: %s", errs.ErrFileNotFound, errs.ErrIO, path)
	}

	return nil, fmt.Errorf("%w: read %s: %w", errs.ErrIO, path, err)
}

// Exists reports whether path names an existing regular file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
