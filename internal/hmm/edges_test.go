package hmm

import "testing"

type fakeGraph struct {
	sentence []byte
	edges    [][2]int
}

func (g *fakeGraph) Sentence() []byte { return g.sentence }

func (g *fakeGraph) AddEdge(u, v int, w float64) {
	g.edges = append(g.edges, [2]int{u, v})
}

func TestAddEdgesSkipsTrivialModel(t *testing.T) {
	m := New()
	g := &fakeGraph{sentence: []byte("你好")}
	if err := m.AddEdges(g, 1.0); err != nil {
		t.Fatalf("AddEdges: %v", err)
	}
	if len(g.edges) != 0 {
		t.Fatalf("trivial model should add no edges, got %v", g.edges)
	}
}

func TestAddEdgesPartitionsOnEndAndSingle(t *testing.T) {
	m := New()
	m.Train(runes("他是中国人"), []int{Single, Single, Begin, Middle, End})
	m.Train(runes("中国人很好"), []int{Begin, Middle, End, Single, Single})
	m.Normalize()

	g := &fakeGraph{sentence: []byte("中国她")}
	if err := m.AddEdges(g, 1.0); err != nil {
		t.Fatalf("AddEdges: %v", err)
	}
	if len(g.edges) == 0 {
		t.Fatal("expected at least one edge")
	}
	// every edge must land on a rune boundary and cover the sentence.
	covered := 0
	for _, e := range g.edges {
		if e[1] <= e[0] {
			t.Fatalf("non-increasing edge %v", e)
		}
		covered = e[1]
	}
	if covered != len(g.sentence) {
		t.Fatalf("edges cover %d bytes, want %d", covered, len(g.sentence))
	}
}
