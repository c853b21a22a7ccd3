package segmenter

import (
	"math"
	"testing"
)

// Edges (0,2,5), (2,5,10), (0,1,7), (1,5,9), (5,6,4) over "012345"
// yield a shortest path from 0 to 6 with cut points [2,5] and score
// 19.
func TestShortestPathPicksCheapestCuts(t *testing.T) {
	g := NewDAG([]byte("012345"))
	g.AddEdge(0, 2, 5)
	g.AddEdge(2, 5, 10)
	g.AddEdge(0, 1, 7)
	g.AddEdge(1, 5, 9)
	g.AddEdge(5, 6, 4)

	path, score := g.ShortestPath(6)
	wantPath := []int{2, 5}
	if len(path) != len(wantPath) {
		t.Fatalf("path = %v, want %v", path, wantPath)
	}
	for i := range wantPath {
		if path[i] != wantPath[i] {
			t.Fatalf("path = %v, want %v", path, wantPath)
		}
	}
	if math.Abs(score-19) > 1e-9 {
		t.Fatalf("score = %v, want 19", score)
	}
}

// Adding a duplicate edge keeps the smaller weight.
func TestAddEdgeMonotoneDominance(t *testing.T) {
	g := NewDAG([]byte("ab"))
	g.AddEdge(0, 1, 5)
	g.AddEdge(0, 1, 3)
	g.AddEdge(0, 1, 9)

	if len(g.out[0]) != 1 {
		t.Fatalf("expected a single edge (0,1), got %v", g.out[0])
	}
	if g.out[0][0].weight != 3 {
		t.Fatalf("weight = %v, want 3", g.out[0][0].weight)
	}
}

func TestShortestPathUniquePathIsForced(t *testing.T) {
	g := NewDAG([]byte("abc"))
	g.AddEdge(0, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)

	path, score := g.ShortestPath(3)
	if len(path) != 2 || path[0] != 1 || path[1] != 2 {
		t.Fatalf("path = %v, want [1 2]", path)
	}
	if score != 3 {
		t.Fatalf("score = %v, want 3", score)
	}
}
