// Package hmm implements the four-state (Begin/Middle/End/Single)
// hidden Markov model used for out-of-dictionary segmentation: a
// training view of integer counts, a normalized view of log2
// probabilities, and the Viterbi decoder over it.
package hmm

import (
	"math"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spaolacci/murmur3"
)

// BMES state ordinals.
const (
	Begin = iota
	Middle
	End
	Single
	numStates = 4
)

// uniformEmission is the log2 probability assigned to any state for
// an observable rune never seen during training: -log2(4).
const uniformEmission = -2.0

type emissionRow struct {
	obs    []byte
	counts [numStates]int
}

// Model holds both the training-view counts and, once Normalize has
// been called, the derived log2-probability view used by Viterbi.
type Model struct {
	log *log.Helper

	pi [numStates]int
	a  [numStates][numStates]int
	b  map[uint64]*emissionRow

	normalized bool
	piLog      [numStates]float64
	aLog       [numStates][numStates]float64
	bLog       map[uint64][numStates]float64
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithLogger injects a logger; defaults to log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(m *Model) { m.log = log.NewHelper(logger) }
}

// New returns an untrained model.
func New(opts ...Option) *Model {
	m := &Model{
		log: log.NewHelper(log.DefaultLogger),
		b:   make(map[uint64]*emissionRow),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func emitKey(obs []byte) uint64 { return murmur3.Sum64(obs) }

// Train folds one labeled observation sequence into the training
// counts. obs and tags must have equal length; tags are state
// ordinals (Begin/Middle/End/Single).
func (m *Model) Train(obs [][]byte, tags []int) {
	m.normalized = false
	if len(obs) == 0 {
		return
	}
	m.pi[tags[0]]++
	for i := range obs {
		m.addEmission(obs[i], tags[i])
		if i+1 < len(obs) {
			m.a[tags[i]][tags[i+1]]++
		}
	}
}

func (m *Model) addEmission(obs []byte, tag int) {
	key := emitKey(obs)
	row, ok := m.b[key]
	if !ok {
		row = &emissionRow{obs: append([]byte(nil), obs...)}
		m.b[key] = row
	}
	row.counts[tag]++
}

// Trivial reports whether the model has no usable training signal:
// the initial-state distribution is empty, or any transition row
// sums to zero. Callers must skip HMM contribution when
// Trivial returns true.
func (m *Model) Trivial() bool {
	sum := 0
	for _, c := range m.pi {
		sum += c
	}
	if sum == 0 {
		return true
	}
	for i := range m.a {
		rowSum := 0
		for _, c := range m.a[i] {
			rowSum += c
		}
		if rowSum == 0 {
			return true
		}
	}
	return false
}

// Normalize derives the log2-probability view from the current
// training counts. A row whose sum is zero normalizes to all zeros
// such a model is also Trivial, so callers never consult those
// zeros.
func (m *Model) Normalize() {
	m.piLog = normalizeRow(m.pi)
	for i := range m.a {
		m.aLog[i] = normalizeRow(m.a[i])
	}
	m.bLog = make(map[uint64][numStates]float64, len(m.b))
	for key, row := range m.b {
		m.bLog[key] = normalizeRow(row.counts)
	}
	m.normalized = true
}

func normalizeRow(counts [numStates]int) [numStates]float64 {
	var sum int
	for _, c := range counts {
		sum += c
	}
	var out [numStates]float64
	if sum == 0 {
		return out
	}
	logSum := math.Log2(float64(sum))
	for i, c := range counts {
		if c == 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = math.Log2(float64(c)) - logSum
	}
	return out
}

// emit returns the log2 emission probability of obs under state k,
// falling back to the uniform distribution for an observable never
// seen during training.
func (m *Model) emit(obs []byte, k int) float64 {
	row, ok := m.bLog[emitKey(obs)]
	if !ok {
		return uniformEmission
	}
	return row[k]
}
