package segmenter

// edge is one outgoing arc of the segmentation DAG.
type edge struct {
	to     int
	weight float64
}

// DAG is the weighted segmentation graph over byte offsets 0..n of a
// sentence. Every vertex is allocated up front by NewDAG; a vertex
// takes part in the path search only once edges reference it.
type DAG struct {
	sentence []byte
	out      [][]edge // out[u] holds every edge leaving u, sorted by insertion
	toIndex  []map[int]int
	inDegree []int
}

// NewDAG allocates a DAG over sentence with vertices 0..len(sentence).
func NewDAG(sentence []byte) *DAG {
	n := len(sentence)
	g := &DAG{
		sentence: sentence,
		out:      make([][]edge, n+1),
		toIndex:  make([]map[int]int, n+1),
		inDegree: make([]int, n+1),
	}
	for i := range g.toIndex {
		g.toIndex[i] = make(map[int]int)
	}
	return g
}

// Sentence returns the byte sequence the DAG was built over. It
// satisfies dict.Graph and hmm.Graph.
func (g *DAG) Sentence() []byte { return g.sentence }

// AddEdge inserts edge (u,v,w) if none exists yet; otherwise keeps
// the strictly smaller of the two weights: minimum weight wins on
// collision.
func (g *DAG) AddEdge(u, v int, weight float64) {
	if i, ok := g.toIndex[u][v]; ok {
		if weight < g.out[u][i].weight {
			g.out[u][i].weight = weight
		}
		return
	}
	g.toIndex[u][v] = len(g.out[u])
	g.out[u] = append(g.out[u], edge{to: v, weight: weight})
	g.inDegree[v]++
}

// ShortestPath relaxes edges in Kahn topological order from vertex 0
// to vertex end, returning the internal cut points (excluding both
// endpoints) and the total score.
func (g *DAG) ShortestPath(end int) ([]int, float64) {
	n := len(g.out)
	visited := make([]bool, n)
	score := make([]float64, n)
	pred := make([]int, n)
	for i := range pred {
		pred[i] = -1
	}

	inDegree := make([]int, n)
	copy(inDegree, g.inDegree)

	queue := make([]int, 0, n)
	queue = append(queue, 0)
	visited[0] = true
	score[0] = 0

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, e := range g.out[u] {
			v := e.to
			newScore := score[u] + e.weight
			if !visited[v] {
				visited[v] = true
				score[v] = newScore
				pred[v] = u
			} else if newScore < score[v] {
				score[v] = newScore
				pred[v] = u
			}
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	var path []int
	for v := pred[end]; v > 0; v = pred[v] {
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, score[end]
}
