package metrics

import (
	"errors"

	"github.com/arloliu/posefile/errs"
)

// ErrorType maps an error to a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, errs.ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, errs.ErrTruncatedData):
		return "truncated_data"
	case errors.Is(err, errs.ErrMalformedLine):
		return "malformed_line"
	case errors.Is(err, errs.ErrUnknownFormat):
		return "unknown_format"
	case errors.Is(err, errs.ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, errs.ErrInvalidOption):
		return "invalid_option"
	case errors.Is(err, errs.ErrUnsupportedCompression):
		return "unsupported_compression"
	case errors.Is(err, errs.ErrIO):
		return "io"
	default:
		return "other"
	}
}
