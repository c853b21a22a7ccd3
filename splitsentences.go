package segmenter

import (
	"sort"

	"github.com/ericlingit/segmenter/internal/trie"
)

// sentenceTerminators are the patterns SplitSentences chunks on:
// ideographic full stop, question mark, exclamation mark, and line
// endings.
var sentenceTerminators = []string{"。", "？", "！", "\r\n", "\n"}

// SplitSentences chunks text on the fixed terminator set using the
// construction-form Aho-Corasick automaton (internal/trie). A lone
// newline is itself a sentence boundary, so consecutive terminators
// yield one-token sentences. It is sugar around machinery the
// dictionary already builds and is not part of Cut's call graph.
func SplitSentences(text string) []string {
	t := trie.New()
	for _, term := range sentenceTerminators {
		t.Add([]byte(term))
	}
	t.Finalize()

	sentence := []byte(text)
	ends := map[int]struct{}{}
	t.Scan(sentence, func(end int, _ []byte) {
		ends[end] = struct{}{}
	})

	sorted := make([]int, 0, len(ends))
	for e := range ends {
		sorted = append(sorted, e)
	}
	sort.Ints(sorted)

	var out []string
	start := 0
	for _, e := range sorted {
		if e <= start {
			continue
		}
		out = append(out, string(sentence[start:e]))
		start = e
	}
	if start < len(sentence) {
		out = append(out, string(sentence[start:]))
	}
	return out
}
