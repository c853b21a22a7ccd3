package segmenter

import (
	"github.com/go-kratos/kratos/v2/errors"

	"github.com/ericlingit/segmenter/internal/errs"
)

// Error codes surfaced at the API boundary.
const (
	CodeOK          = errs.CodeOK
	CodeInternal    = errs.CodeInternal
	CodeIO          = errs.CodeIO
	CodeBadEncoding = errs.CodeBadEncoding
	CodeExhausted   = errs.CodeExhausted
)

// Code extracts the numeric error code from err, or CodeOK if err is
// nil. An error that is not one of this package's typed errors gets
// whatever code kratos's errors.Code assigns it (its unknown code, 500,
// for a plain Go error).
func Code(err error) int {
	if err == nil {
		return CodeOK
	}
	return int(errors.Code(err))
}

var (
	errInternal    = errs.Internal
	errIO          = errs.IO
	errBadEncoding = errs.BadEncoding
	errExhausted   = errs.Exhausted
)
