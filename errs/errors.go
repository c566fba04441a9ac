// Package errs defines the sentinel errors shared by every posefile package.
//
// Errors returned by posefile operations wrap exactly one of these sentinels with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is while still
// getting the path and the expected/actual values in the message.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaViolation reports an array whose shape breaks a structural rule, e.g. a keypoint
	// entry that is neither 1-D nor 3-D.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrIO reports a failure to open, read, write or close a file.
	ErrIO = errors.New("i/o error")
	// ErrTruncatedData reports binary data shorter than its header declares.
	ErrTruncatedData = errors.New("truncated data")
	// ErrMalformedLine reports a rectangle line that does not hold exactly four numbers.
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnknownFormat reports an archive format name outside json/xml/yaml/yml.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrFileNotFound reports a missing archive file on load.
	ErrFileNotFound = errors.New("file not found")

	// ErrLengthMismatch reports parallel slices (arrays and names) of different lengths.
	ErrLengthMismatch = fmt.Errorf("%w: length mismatch", ErrSchemaViolation)
	// ErrUnsupportedCompression reports a compression type with no registered codec.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrInvalidOption reports a functional option that rejected its argument.
	ErrInvalidOption = errors.New("invalid option")
)
