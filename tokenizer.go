// Package segmenter implements a Chinese word segmentation engine:
// a frequency dictionary matched through a tail-compressed Aho-
// Corasick double-array trie, a four-state hidden Markov model for
// out-of-dictionary runs, and a weighted DAG whose topological
// shortest path selects the final segmentation.
package segmenter

import (
	"os"
	"sort"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/ericlingit/segmenter/internal/dict"
	"github.com/ericlingit/segmenter/internal/hmm"
)

// defaultHMMWeightFloor caps the denominator of the derived w_hmm
// weight. It is a tunable hyperparameter, exposed through
// WithHMMWeightFloor.
const defaultHMMWeightFloor = 2000

// defaultRuneWeight is used for the rune-chain edges when no
// dictionary is supplied; with one, w_rune is derived from the
// dictionary's total word count instead.
const defaultRuneWeight = 1.0

// Tokenizer segments sentences using an optional dictionary and an
// optional HMM, in any of the four presence combinations.
type Tokenizer struct {
	log *log.Helper

	dict *dict.Dictionary
	hmm  *hmm.Model

	hmmWeightFloor int
	runeWeight     *float64
	hmmWeight      *float64
}

// Option configures a Tokenizer at construction time.
type Option func(*Tokenizer)

// WithLogger injects a logger; defaults to log.DefaultLogger.
func WithLogger(logger log.Logger) Option {
	return func(tk *Tokenizer) { tk.log = newHelper(logger) }
}

// WithHMMWeightFloor overrides the floor constant (default 2000) in
// the derived w_hmm weight 2*(log2(total) - log2(min(total, floor))).
func WithHMMWeightFloor(floor int) Option {
	return func(tk *Tokenizer) { tk.hmmWeightFloor = floor }
}

// WithRuneWeight pins w_rune instead of deriving it from the
// dictionary's total word count.
func WithRuneWeight(w float64) Option {
	return func(tk *Tokenizer) { tk.runeWeight = &w }
}

// WithHMMWeight pins w_hmm instead of deriving it from the
// dictionary's total word count.
func WithHMMWeight(w float64) Option {
	return func(tk *Tokenizer) { tk.hmmWeight = &w }
}

// New builds a Tokenizer from an already-built dictionary and/or HMM.
// Either may be nil; Cut degrades gracefully. When both are absent,
// each CJK ideograph becomes its own token, while a run of runes of a
// single other special class (whitespace, line endings, other
// characters) still becomes one token through its zero-weight edge.
func New(d *dict.Dictionary, h *hmm.Model, opts ...Option) *Tokenizer {
	tk := &Tokenizer{
		log:            newHelper(nil),
		dict:           d,
		hmm:            h,
		hmmWeightFloor: defaultHMMWeightFloor,
	}
	for _, o := range opts {
		o(tk)
	}
	return tk
}

// NewFromFiles loads a frequency dictionary and an HMM from their
// text file formats and builds a Tokenizer from them. Either path
// may be empty to build a dictionary-less or HMM-less tokenizer.
func NewFromFiles(dictionaryFile, hmmFile string, opts ...Option) (*Tokenizer, error) {
	tk := New(nil, nil, opts...)

	if dictionaryFile != "" {
		f, err := os.Open(dictionaryFile)
		if err != nil {
			tk.log.Errorf("segmenter: opening dictionary file %q: %v", dictionaryFile, err)
			return nil, errIO("segmenter: opening dictionary file %q: %v", dictionaryFile, err)
		}
		defer f.Close()
		loaded, err := dict.Load(f)
		if err != nil {
			tk.log.Errorf("segmenter: loading dictionary file %q: %v", dictionaryFile, err)
			return nil, err
		}
		tk.dict = loaded
	}

	if hmmFile != "" {
		f, err := os.Open(hmmFile)
		if err != nil {
			tk.log.Errorf("segmenter: opening HMM file %q: %v", hmmFile, err)
			return nil, errIO("segmenter: opening HMM file %q: %v", hmmFile, err)
		}
		defer f.Close()
		loaded, err := hmm.Load(f)
		if err != nil {
			tk.log.Errorf("segmenter: loading HMM file %q: %v", hmmFile, err)
			return nil, err
		}
		tk.hmm = loaded
	}

	return tk, nil
}

// AddWord inserts word into the tokenizer's dictionary, suggesting a
// frequency when freq <= 0. Returns an internal error if no
// dictionary is attached.
func (tk *Tokenizer) AddWord(word string, freq int) error {
	if tk.dict == nil {
		tk.log.Errorf("segmenter: AddWord called on a tokenizer with no dictionary")
		return errInternal("segmenter: AddWord called on a tokenizer with no dictionary")
	}
	tk.dict.AddUserWord([]byte(word), freq)
	return nil
}

// Cut segments sentence and returns its tokens in order.
// Concatenating the tokens reproduces sentence byte-for-byte.
func (tk *Tokenizer) Cut(sentence string, useHMM bool) ([]string, error) {
	tokens, err := tk.wordBreak([]byte(sentence), useHMM)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tokens))
	for i, b := range tokens {
		out[i] = string(b)
	}
	return out, nil
}

func (tk *Tokenizer) wordBreak(sentence []byte, useHMM bool) ([][]byte, error) {
	g := NewDAG(sentence)
	if len(sentence) == 0 {
		return nil, nil
	}

	wRune := defaultRuneWeight
	if tk.runeWeight != nil {
		wRune = *tk.runeWeight
	} else if tk.dict != nil {
		wRune = tk.dict.SuggestRuneWeight()
	}
	if err := addRuneChain(g, sentence, wRune); err != nil {
		tk.log.Errorf("segmenter: rune chain: %v", err)
		return nil, err
	}
	if err := addSpecialEdges(g, sentence); err != nil {
		tk.log.Errorf("segmenter: special edges: %v", err)
		return nil, err
	}

	if tk.dict != nil {
		if err := tk.dict.AddEdges(g); err != nil {
			tk.log.Errorf("segmenter: dictionary edges: %v", err)
			return nil, err
		}
	}

	if tk.hmm != nil && useHMM && !tk.hmm.Trivial() {
		wHMM := 0.0
		switch {
		case tk.hmmWeight != nil:
			wHMM = *tk.hmmWeight
		case tk.dict != nil:
			wHMM = tk.dict.SuggestHMMWeight(tk.hmmWeightFloor)
		}
		if err := tk.hmm.AddEdges(g, wHMM); err != nil {
			tk.log.Errorf("segmenter: hmm edges: %v", err)
			return nil, err
		}
	}

	cuts, _ := g.ShortestPath(len(sentence))

	bounds := make([]int, 0, len(cuts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cuts...)
	bounds = append(bounds, len(sentence))

	tokens := make([][]byte, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		tokens = append(tokens, sentence[bounds[i-1]:bounds[i]])
	}
	return tokens, nil
}

// TokenIter yields segmentation tokens in order. Each token is a view
// into the sentence passed to CutIter and shares its lifetime.
type TokenIter struct {
	tokens [][]byte
	pos    int
}

// Next returns the next token, or an exhausted error once every
// token has been consumed.
func (it *TokenIter) Next() ([]byte, error) {
	if it.pos >= len(it.tokens) {
		return nil, errExhausted("segmenter: token iterator exhausted")
	}
	tok := it.tokens[it.pos]
	it.pos++
	return tok, nil
}

// CutIter segments sentence and returns an iterator over
// borrowed token views, for callers that want to avoid the per-token
// string copies Cut makes.
func (tk *Tokenizer) CutIter(sentence []byte, useHMM bool) (*TokenIter, error) {
	tokens, err := tk.wordBreak(sentence, useHMM)
	if err != nil {
		return nil, err
	}
	return &TokenIter{tokens: tokens}, nil
}

type sentenceJob struct {
	id   int
	text string
}

type sentenceResult struct {
	id     int
	tokens []string
	err    error
}

// CutParallel fans Cut out across sentences, each segmenting
// independently over the tokenizer's shared, immutable
// dictionary/HMM pair. If ordered is true the returned
// tokens are concatenated in the same order as sentences; otherwise
// completion order is used and the final sort by sentence is skipped.
func (tk *Tokenizer) CutParallel(sentences []string, useHMM bool, numWorkers int, ordered bool) ([]string, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan sentenceJob, len(sentences))
	for i, s := range sentences {
		jobs <- sentenceJob{id: i, text: s}
	}
	close(jobs)

	results := make(chan sentenceResult, len(sentences))
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				toks, err := tk.Cut(j.text, useHMM)
				results <- sentenceResult{id: j.id, tokens: toks, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]sentenceResult, 0, len(sentences))
	for r := range results {
		collected = append(collected, r)
	}

	if ordered {
		sort.Slice(collected, func(i, j int) bool { return collected[i].id < collected[j].id })
	}

	var out []string
	for _, r := range collected {
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, r.tokens...)
	}
	return out, nil
}
