package hmm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ericlingit/segmenter/internal/errs"
)

// Load reads an HMM text file: line 1 is
// pi[B] pi[M] pi[E] pi[S]; lines 2-5 are the four rows of A; then,
// for each observed rune, a line with its UTF-8 bytes followed by a
// line with its four emission counts. The returned model is
// normalized and ready for Viterbi.
func Load(r io.Reader, opts ...Option) (*Model, error) {
	m := New(opts...)
	sc := bufio.NewScanner(r)

	readCounts := func(what string) ([numStates]int, error) {
		var out [numStates]int
		if !sc.Scan() {
			m.log.Errorf("hmm: unexpected EOF reading %s", what)
			return out, errs.IO("hmm: unexpected EOF reading %s", what)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != numStates {
			m.log.Errorf("hmm: %s: want %d fields, got %d", what, numStates, len(fields))
			return out, errs.IO("hmm: %s: want %d fields, got %d", what, numStates, len(fields))
		}
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				m.log.Errorf("hmm: %s: bad integer %q", what, f)
				return out, errs.IO("hmm: %s: bad integer %q", what, f)
			}
			out[i] = v
		}
		return out, nil
	}

	pi, err := readCounts("pi")
	if err != nil {
		return nil, err
	}
	m.pi = pi

	for i := 0; i < numStates; i++ {
		row, err := readCounts(fmt.Sprintf("A row %d", i))
		if err != nil {
			return nil, err
		}
		m.a[i] = row
	}

	for sc.Scan() {
		obsLine := sc.Text()
		if obsLine == "" {
			continue
		}
		counts, err := readCounts(fmt.Sprintf("B[%q]", obsLine))
		if err != nil {
			return nil, err
		}
		key := emitKey([]byte(obsLine))
		m.b[key] = &emissionRow{obs: []byte(obsLine), counts: counts}
	}
	if err := sc.Err(); err != nil {
		m.log.Errorf("hmm: read failed: %v", err)
		return nil, errs.IO("hmm: read failed: %v", err)
	}

	m.Normalize()
	return m, nil
}

// Save writes m's training-view counts in the same text format Load
// reads.
func Save(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", m.pi[0], m.pi[1], m.pi[2], m.pi[3]); err != nil {
		return errs.IO("hmm: write failed: %v", err)
	}
	for i := 0; i < numStates; i++ {
		row := m.a[i]
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", row[0], row[1], row[2], row[3]); err != nil {
			return errs.IO("hmm: write failed: %v", err)
		}
	}
	for _, row := range m.b {
		if _, err := fmt.Fprintf(bw, "%s\n%d %d %d %d\n", row.obs, row.counts[0], row.counts[1], row.counts[2], row.counts[3]); err != nil {
			return errs.IO("hmm: write failed: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.IO("hmm: flush failed: %v", err)
	}
	return nil
}
