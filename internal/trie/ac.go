// Package trie implements the construction-form Aho-Corasick automaton
// and its compaction into a double-array trie (see dat.go).
//
// The construction trie is a scratch structure: a caller builds it word
// by word with Add, calls Finalize once to compute failure links, and
// then hands it to Build (dat.go) to compile the scan-form automaton.
// It is not meant to be scanned directly except by tests and the
// sentence-splitter convenience, which do not need the compaction.
package trie

import "container/list"

// Node is one state of the construction-form trie. Children are keyed
// by the incoming byte so the trie can be compiled into a double-array
// form addressed by base+byte arithmetic.
type Node struct {
	Parent       int
	IncomingByte byte
	Children     map[byte]int
	Fail         int
	// Terminal holds the matched word's bytes when this node ends a
	// pattern, nil otherwise. It is a view into caller-owned storage
	// (the frequency dictionary's slab) and is never copied here.
	Terminal []byte
}

// Trie is the construction-form Aho-Corasick automaton.
type Trie struct {
	nodes     []Node
	finalized bool
}

// New returns an empty trie containing only the root node.
func New() *Trie {
	t := &Trie{nodes: make([]Node, 1, 64)}
	t.nodes[0] = Node{Children: make(map[byte]int)}
	return t
}

// Add inserts word into the trie, creating nodes along its byte path.
// Re-adding the same bytes re-uses the existing terminal node and
// simply overwrites its Terminal view.
func (t *Trie) Add(word []byte) {
	cur := 0
	for _, b := range word {
		next, ok := t.nodes[cur].Children[b]
		if !ok {
			next = len(t.nodes)
			t.nodes = append(t.nodes, Node{
				Parent:       cur,
				IncomingByte: b,
				Children:     make(map[byte]int),
			})
			t.nodes[cur].Children[b] = next
		}
		cur = next
	}
	t.nodes[cur].Terminal = word
}

// Finalize computes the failure link of every node via a breadth-first
// walk. Root and depth-1 nodes fail to the root (index 0).
func (t *Trie) Finalize() {
	queue := list.New()
	for _, c := range t.nodes[0].Children {
		t.nodes[c].Fail = 0
		queue.PushBack(c)
	}
	for queue.Len() > 0 {
		v := queue.Remove(queue.Front()).(int)
		for b, c := range t.nodes[v].Children {
			queue.PushBack(c)
			f := t.nodes[v].Fail
			for {
				if fc, ok := t.nodes[f].Children[b]; ok {
					t.nodes[c].Fail = fc
					break
				}
				if f == 0 {
					t.nodes[c].Fail = 0
					break
				}
				f = t.nodes[f].Fail
			}
		}
	}
	t.finalized = true
}

// NumNodes returns the number of nodes in the trie, including the root.
func (t *Trie) NumNodes() int { return len(t.nodes) }

// Parent returns the parent id of node i. Parent(0) is 0 by convention.
func (t *Trie) Parent(i int) int { return t.nodes[i].Parent }

// IncomingByte returns the byte labeling the edge from Parent(i) to i.
func (t *Trie) IncomingByte(i int) byte { return t.nodes[i].IncomingByte }

// Children returns the child-byte to child-id map of node i. Callers
// must not mutate the returned map.
func (t *Trie) Children(i int) map[byte]int { return t.nodes[i].Children }

// Fail returns the failure-link target of node i. Valid only after
// Finalize.
func (t *Trie) Fail(i int) int { return t.nodes[i].Fail }

// Terminal returns the matched word bytes at node i, or nil if i does
// not end a pattern.
func (t *Trie) Terminal(i int) []byte { return t.nodes[i].Terminal }

// Scan reports every pattern match in text using the construction
// form directly (no double-array compaction). It requires Finalize
// to have been called. It exists
// for cross-checking the compiled DAT scan (dat_test.go) and for the
// sentence-splitter convenience; the dictionary's hot path always
// scans through the compiled DAT instead.
func (t *Trie) Scan(text []byte, emit func(end int, word []byte)) {
	state := 0
	for i, b := range text {
		for {
			if c, ok := t.nodes[state].Children[b]; ok {
				state = c
				break
			}
			if state == 0 {
				break
			}
			state = t.nodes[state].Fail
		}
		for m := state; m != 0; m = t.nodes[m].Fail {
			if word := t.nodes[m].Terminal; word != nil {
				emit(i+1, word)
			}
		}
	}
}
