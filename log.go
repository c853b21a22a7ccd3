package segmenter

import "github.com/go-kratos/kratos/v2/log"

// newHelper returns a log.Helper wrapping logger, defaulting to
// log.DefaultLogger when logger is nil. The Tokenizer constructors in
// this package accept an optional logger through WithLogger rather than
// calling log.Fatal on its own errors — a library reports, it does
// not terminate its host process.
func newHelper(logger log.Logger) *log.Helper {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return log.NewHelper(logger)
}
