package segmenter

import "github.com/ericlingit/segmenter/internal/hop"

// addRuneChain adds an edge of weight wRune between every adjacent
// pair of byte offsets that bound a rune in sentence. This guarantees a path exists from 0 to len(sentence) no
// matter what the dictionary and HMM contribute.
func addRuneChain(g *DAG, sentence []byte, wRune float64) error {
	return hop.Runes(sentence, func(start, end int) {
		g.AddEdge(start, end, wRune)
	})
}
