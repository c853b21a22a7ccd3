// Package errs defines the typed error codes shared by the dictionary,
// HMM, and orchestrator packages.
package errs

import "github.com/go-kratos/kratos/v2/errors"

// Numeric codes surfaced at the API boundary.
const (
	CodeOK          = 0
	CodeInternal    = -1
	CodeIO          = -2
	CodeBadEncoding = -3
	CodeExhausted   = -4
)

// Internal reports an invariant violation or misuse detected at run
// time: a dictionary scan before Finalize, a DAT match missing from the
// word table, or AddWord on a tokenizer with no dictionary.
func Internal(format string, a ...interface{}) error {
	return errors.Newf(CodeInternal, "INTERNAL", format, a...)
}

// IO wraps a failure while loading a dictionary or HMM file.
func IO(format string, a ...interface{}) error {
	return errors.Newf(CodeIO, "IO", format, a...)
}

// BadEncoding reports invalid UTF-8 at a rune-hop site.
func BadEncoding(format string, a ...interface{}) error {
	return errors.Newf(CodeBadEncoding, "BAD_ENCODING", format, a...)
}

// Exhausted reports a read past the end of a result iterator.
func Exhausted(format string, a ...interface{}) error {
	return errors.Newf(CodeExhausted, "EXHAUSTED", format, a...)
}
