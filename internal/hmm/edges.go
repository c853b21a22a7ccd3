package hmm

import "github.com/ericlingit/segmenter/internal/hop"

// Graph is the minimal surface the HMM wrapper needs from the
// caller's segmentation DAG, mirroring dict.Graph.
type Graph interface {
	Sentence() []byte
	AddEdge(u, v int, weight float64)
}

// AddEdges is the 4-tag DAG wrapper: split g's sentence into runes,
// run Viterbi, and emit one segmentation edge per rune tagged End or
// Single, each weighted wHMM. It is a no-op when m is trivial.
func (m *Model) AddEdges(g Graph, wHMM float64) error {
	if m.Trivial() {
		return nil
	}
	if !m.normalized {
		m.Normalize()
	}
	sentence := g.Sentence()

	var obs [][]byte
	var boundaries [][2]int
	if err := hop.Runes(sentence, func(start, end int) {
		obs = append(obs, sentence[start:end])
		boundaries = append(boundaries, [2]int{start, end})
	}); err != nil {
		return err
	}
	if len(obs) == 0 {
		return nil
	}

	tags := m.Viterbi(obs)

	edgeStart := boundaries[0][0]
	for i, tag := range tags {
		if tag != End && tag != Single {
			continue
		}
		edgeEnd := boundaries[i][1]
		g.AddEdge(edgeStart, edgeEnd, wHMM)
		edgeStart = edgeEnd
	}
	return nil
}
