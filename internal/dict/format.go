package dict

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ericlingit/segmenter/internal/errs"
)

// Load reads a frequency-dictionary file - one word per line,
// "<word bytes> <decimal frequency>\n", a single ASCII 0x20
// separator, LF terminator, no comments or header - and returns a
// finalized Dictionary.
func Load(r io.Reader, opts ...Option) (*Dictionary, error) {
	d := New(opts...)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		i := strings.LastIndexByte(line, ' ')
		if i < 0 {
			d.log.Errorf("dict: malformed line %d: missing frequency field", lineNo)
			return nil, errs.IO("dict: malformed line %d: missing frequency field", lineNo)
		}
		word, freqStr := line[:i], line[i+1:]
		if word == "" {
			d.log.Errorf("dict: malformed line %d: empty word", lineNo)
			return nil, errs.IO("dict: malformed line %d: empty word", lineNo)
		}
		freq, err := strconv.Atoi(freqStr)
		if err != nil {
			d.log.Errorf("dict: malformed line %d: bad frequency %q", lineNo, freqStr)
			return nil, errs.IO("dict: malformed line %d: bad frequency %q", lineNo, freqStr)
		}
		d.AddWord([]byte(word), freq)
	}
	if err := sc.Err(); err != nil {
		d.log.Errorf("dict: read failed: %v", err)
		return nil, errs.IO("dict: read failed: %v", err)
	}
	d.Finalize()
	return d, nil
}

// Save writes d's sorted (word, freq) table in the same text format
// Load reads. d must already be finalized.
func Save(w io.Writer, d *Dictionary) error {
	bw := bufio.NewWriter(w)
	for _, e := range d.entries {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.word, e.freq); err != nil {
			return errs.IO("dict: write failed: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.IO("dict: flush failed: %v", err)
	}
	return nil
}
