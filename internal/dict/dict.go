// Package dict implements the frequency dictionary: a slab-backed
// word table matched against the input via a compiled double-array
// trie, producing weighted DAG edges for every occurrence of a
// dictionary word.
package dict

import (
	"math"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/ericlingit/segmenter/internal/errs"
	"github.com/ericlingit/segmenter/internal/hop"
	"github.com/ericlingit/segmenter/internal/trie"
)

// Graph is the minimal surface the dictionary needs from a caller's
// segmentation DAG. The orchestrator's DAG type satisfies it; kept as
// an interface here so this package never imports the root package.
type Graph interface {
	Sentence() []byte
	AddEdge(u, v int, weight float64)
}

type entry struct {
	word []byte
	freq int
}

// Dictionary is a frequency-weighted word list matched with a
// tail-compressed Aho-Corasick double-array trie.
type Dictionary struct {
	log *log.Helper

	slab      *slab
	trie      *trie.Trie
	dat       *trie.DAT
	entries   []entry
	byWord    map[string]int // word bytes -> index into entries, for AddWord's duplicate check
	total     int
	finalized bool

	// hashCache short-circuits Freq for words already looked up once,
	// keyed by xxhash of the word bytes; it accelerates repeat lookups,
	// e.g. from AddEdges scans of the same sentence. The sorted table
	// remains the source of truth; a cache hit is verified against the
	// stored word bytes before being trusted.
	hashMu    sync.Mutex
	hashCache map[uint64]int
}

// Option configures a Dictionary at construction time.
type Option func(*Dictionary)

// WithLogger injects a logger; defaults to log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(d *Dictionary) { d.log = log.NewHelper(logger) }
}

// WithBlockSize overrides the slab's block size, mainly for tests
// that want to exercise multi-block allocation without a huge
// dictionary.
func WithBlockSize(n int) Option {
	return func(d *Dictionary) { d.slab = newSlab(n) }
}

// New returns an empty, unfinalized dictionary.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		log:       log.NewHelper(log.DefaultLogger),
		slab:      newSlab(defaultBlockSize),
		trie:      trie.New(),
		byWord:    make(map[string]int),
		hashCache: make(map[uint64]int),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// AddWord copies word into the dictionary's slab, registers it with
// the underlying trie, and folds freq into the running total. It must
// not be called concurrently with itself, Finalize, or a scan.
func (d *Dictionary) AddWord(word []byte, freq int) {
	view := d.slab.put(word)
	if idx, ok := d.byWord[string(view)]; ok {
		d.total += freq - d.entries[idx].freq
		d.entries[idx].freq = freq
		return
	}
	d.entries = append(d.entries, entry{word: view, freq: freq})
	d.byWord[string(view)] = len(d.entries) - 1
	d.trie.Add(view)
	d.total += freq
}

// Finalize sorts the word table for binary search, finalizes the
// construction trie, and compiles the scan-form double-array trie.
// Dictionary is read-only after this call.
func (d *Dictionary) Finalize() {
	sort.Slice(d.entries, func(i, j int) bool {
		return string(d.entries[i].word) < string(d.entries[j].word)
	})
	d.byWord = make(map[string]int, len(d.entries))
	for i, e := range d.entries {
		d.byWord[string(e.word)] = i
	}
	d.trie.Finalize()
	d.dat = trie.Build(d.trie)
	d.finalized = true
	d.log.Debugf("dictionary finalized: %d words, total=%d", len(d.entries), d.total)
}

// Freq returns the frequency of word and true if it is present in the
// dictionary.
func (d *Dictionary) Freq(word []byte) (int, bool) {
	key := xxhash.Sum64(word)
	d.hashMu.Lock()
	idx, cached := d.hashCache[key]
	d.hashMu.Unlock()
	if cached && string(d.entries[idx].word) == string(word) {
		return d.entries[idx].freq, true
	}

	i := sort.Search(len(d.entries), func(i int) bool {
		return string(d.entries[i].word) >= string(word)
	})
	if i < len(d.entries) && string(d.entries[i].word) == string(word) {
		d.hashMu.Lock()
		d.hashCache[key] = i
		d.hashMu.Unlock()
		return d.entries[i].freq, true
	}
	return 0, false
}

// Total returns the sum of every word's frequency.
func (d *Dictionary) Total() int { return d.total }

// Len returns the number of distinct words in the dictionary.
func (d *Dictionary) Len() int { return len(d.entries) }

// AddEdges scans g's sentence with the compiled DAT and adds one
// edge per dictionary match, weighted log2(total) - log2(freq).
func (d *Dictionary) AddEdges(g Graph) error {
	if !d.finalized {
		return errs.Internal("dict: AddEdges called before Finalize")
	}
	sentence := g.Sentence()
	var scanErr error
	d.dat.Scan(sentence, func(end int, word []byte) {
		if scanErr != nil {
			return
		}
		freq, ok := d.Freq(word)
		if !ok {
			scanErr = errs.Internal("dict: DAT matched %q, not present in word table", word)
			return
		}
		weight := math.Log2(float64(d.total)) - math.Log2(float64(freq))
		g.AddEdge(end-len(word), end, weight)
	})
	return scanErr
}

// SuggestRuneWeight returns the default w_rune weight:
// log2(total + 1).
func (d *Dictionary) SuggestRuneWeight() float64 {
	return math.Log2(float64(d.total) + 1)
}

// SuggestHMMWeight returns the default w_hmm weight, parameterized
// by the floor constant (2000 by default, see WithHMMWeightFloor on
// the orchestrator).
func (d *Dictionary) SuggestHMMWeight(floor int) float64 {
	if d.total <= 0 {
		return 0
	}
	denom := d.total
	if floor < denom {
		denom = floor
	}
	return 2 * (math.Log2(float64(d.total)) - math.Log2(float64(denom)))
}

// suggestFreq estimates a frequency for a word with no explicit
// count, used by AddUserWord. It finds the cheapest segmentation of
// the word under the current weights and returns the frequency that
// makes the whole word strictly cheaper than that segmentation:
// total * prod(freq_i / total) + 1 over the pieces, with unmatched
// runes counted as frequency 1. An existing entry's frequency is
// kept when it is already higher.
func (d *Dictionary) suggestFreq(word []byte) int {
	existing := 1
	if f, ok := d.Freq(word); ok {
		existing = f
	}
	if !d.finalized || len(word) == 0 || d.total <= 0 {
		return existing
	}

	type span struct {
		start  int
		weight float64
	}
	logTotal := math.Log2(float64(d.total))
	spans := make(map[int][]span)
	d.dat.Scan(word, func(end int, match []byte) {
		if f, ok := d.Freq(match); ok {
			spans[end] = append(spans[end], span{
				start:  end - len(match),
				weight: logTotal - math.Log2(float64(f)),
			})
		}
	})

	n := len(word)
	cost := make([]float64, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = math.Inf(1)
	}
	err := hop.Runes(word, func(start, end int) {
		if c := cost[start] + logTotal; c < cost[end] {
			cost[end] = c
		}
		for _, sp := range spans[end] {
			if c := cost[sp.start] + sp.weight; c < cost[end] {
				cost[end] = c
			}
		}
	})
	if err != nil || math.IsInf(cost[n], 1) {
		return existing
	}
	suggested := int(math.Exp2(-cost[n])*float64(d.total)) + 1
	if suggested > existing {
		return suggested
	}
	return existing
}

// AddUserWord inserts word with an automatically suggested frequency
// when freq <= 0, then rebuilds the compiled trie so the word takes
// effect immediately. Rebuilding is O(dictionary size); acceptable for
// the user-dictionary use case it serves.
func (d *Dictionary) AddUserWord(word []byte, freq int) {
	if freq <= 0 {
		freq = d.suggestFreq(word)
	}
	d.AddWord(word, freq)
	d.Finalize()
}
