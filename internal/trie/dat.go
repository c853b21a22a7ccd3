package trie

import "bytes"

// noneIdx marks an unused base/check slot. A slot is "used" iff its
// Base or Check differs from noneIdx.
const noneIdx = int32(-1)

// loadFactorLimit and gapLimit bound how far the placer's free-slot
// search window ("skip") is allowed to trail behind the highest
// placed base.
const (
	loadFactorLimit = 0.80
	gapLimit        = 5000
)

// Unit is one entry of the double-array trie.
type Unit struct {
	Base  int32
	Check int32
	Fail  int32
	Tail  int32
}

// TailEntry is a tail-compressed match: the full matched word plus how
// many trailing bytes of it were elided from the double-array and must
// instead be confirmed with a direct byte compare at scan time.
type TailEntry struct {
	Match    []byte
	TailSize int
}

// DAT is the compiled, scan-form Aho-Corasick automaton.
type DAT struct {
	units []Unit
	tails []TailEntry
}

// Build compiles a finalized construction trie into a double-array
// trie with tail-chain compression.
func Build(t *Trie) *DAT {
	return build(t, true)
}

// BuildNoMerge compiles t without the tail-merge optimization: every
// terminal node keeps its own placed unit. It exists so tests can
// assert the tail-merging variant produces the same match set as the
// naive one.
func BuildNoMerge(t *Trie) *DAT {
	return build(t, false)
}

func build(t *Trie, merge bool) *DAT {
	n := t.NumNodes()

	failRef := make([]int, n)
	for i := 1; i < n; i++ {
		failRef[t.Fail(i)]++
	}

	merged := make([]bool, n)
	// anchorTail maps a surviving (placed) node id to the tail entry
	// it must carry.
	anchorTail := make(map[int]TailEntry, n)

	for i := 0; i < n; i++ {
		if t.Terminal(i) == nil {
			continue
		}
		if len(t.Children(i)) > 0 {
			// Interior terminal: always placed, never absorbs a
			// descendant's compression (computeAnchor stops at it).
			anchorTail[i] = TailEntry{Match: t.Terminal(i), TailSize: 0}
			continue
		}
		if !merge {
			anchorTail[i] = TailEntry{Match: t.Terminal(i), TailSize: 0}
			continue
		}
		anchor, tailSize := computeAnchor(t, i, failRef)
		for cur := i; cur != anchor; cur = t.Parent(cur) {
			merged[cur] = true
		}
		anchorTail[anchor] = TailEntry{Match: t.Terminal(i), TailSize: tailSize}
	}

	b := &builder{}
	b.units = append(b.units, Unit{Base: noneIdx, Check: noneIdx})
	b.tails = append(b.tails, TailEntry{}) // index 0: sentinel "no match"

	dIdx := make([]int, n)
	queue := []int{0}
	for qi := 0; qi < len(queue); qi++ {
		p := queue[qi]
		pIdx := dIdx[p]

		var bytesList []byte
		children := t.Children(p)
		for cb, c := range children {
			if !merged[c] {
				bytesList = append(bytesList, cb)
			}
		}
		if len(bytesList) == 0 {
			continue
		}
		sortBytes(bytesList)

		newBase := b.findBase(bytesList)
		b.units[pIdx].Base = int32(newBase)
		for _, cb := range bytesList {
			c := children[cb]
			target := newBase + int(cb)
			dIdx[c] = target
			b.units[target].Check = int32(pIdx)
			b.units[target].Fail = int32(dIdx[t.Fail(c)])
			if te, ok := anchorTail[c]; ok {
				b.tails = append(b.tails, te)
				b.units[target].Tail = int32(len(b.tails) - 1)
			}
			queue = append(queue, c)
		}
		b.advanceSkip(newBase)
	}

	return &DAT{units: b.units, tails: b.tails}
}

// computeAnchor finds, for leaf terminal v, the shallowest ancestor
// that must remain independently placed (the "anchor"), and how many
// trailing bytes of v's match were elided along the way. An ancestor
// p other than the root can be climbed
// over (elided) only if it has exactly one child, is not itself a
// dictionary word, and is not the failure-link target of any other
// node. v itself is only eligible to be climbed over if nothing else
// fails to it.
func computeAnchor(t *Trie, v int, failRef []int) (anchor, tailSize int) {
	if failRef[v] != 0 {
		return v, 0
	}
	chain := []int{v}
	cur := v
	for {
		p := t.Parent(cur)
		if p == 0 {
			break
		}
		if len(t.Children(p)) != 1 {
			break
		}
		if t.Terminal(p) != nil {
			break
		}
		if failRef[p] != 0 {
			break
		}
		chain = append(chain, p)
		cur = p
	}
	return chain[len(chain)-1], len(chain) - 1
}

// builder accumulates units/tails during placement and tracks the
// free-slot search window.
type builder struct {
	units []Unit
	tails []TailEntry
	skip  int
}

func (b *builder) ensureSize(n int) {
	for len(b.units) < n {
		grow := len(b.units) * 2
		if grow == 0 {
			grow = 64
		}
		if grow < n {
			grow = n
		}
		next := make([]Unit, grow)
		copy(next, b.units)
		for i := len(b.units); i < grow; i++ {
			next[i] = Unit{Base: noneIdx, Check: noneIdx}
		}
		b.units = next
	}
}

// findBase returns the smallest base >= b.skip such that every child
// byte in bytesList (sorted ascending) lands on a currently unused
// slot.
func (b *builder) findBase(bytesList []byte) int {
	for base := b.skip; ; base++ {
		ok := true
		for _, cb := range bytesList {
			idx := base + int(cb)
			// index 0 is the root unit; its Check stays noneIdx, so it
			// must be excluded from the free-slot test explicitly.
			if idx == 0 || (idx < len(b.units) && b.units[idx].Check != noneIdx) {
				ok = false
				break
			}
		}
		if ok {
			maxIdx := base + int(bytesList[len(bytesList)-1])
			b.ensureSize(maxIdx + 1)
			return base
		}
	}
}

// advanceSkip bounds the cost of future findBase searches: once the
// window [skip, newBase] is dense or wide enough, future searches
// start past it.
func (b *builder) advanceSkip(newBase int) {
	if newBase <= b.skip {
		return
	}
	used := 0
	for i := b.skip; i <= newBase && i < len(b.units); i++ {
		if b.units[i].Base != noneIdx || b.units[i].Check != noneIdx {
			used++
		}
	}
	span := newBase - b.skip + 1
	if float64(used)/float64(span) > loadFactorLimit || newBase-b.skip > gapLimit {
		b.skip = newBase
	}
}

func sortBytes(bs []byte) {
	for i := 1; i < len(bs); i++ {
		for j := i; j > 0 && bs[j-1] > bs[j]; j-- {
			bs[j-1], bs[j] = bs[j], bs[j-1]
		}
	}
}

// Scan runs the double-array scan over s, calling emit for every
// match with the byte offset just past the match and the matched
// word's bytes. The caller computes start = end -
// len(word).
func (d *DAT) Scan(s []byte, emit func(end int, word []byte)) {
	state := 0
	i := 0
	n := len(s)
	for i < n {
		u := d.units[state]
		t := -1
		if u.Base != noneIdx {
			t = int(u.Base) + int(s[i])
		}
		if t >= 0 && t < len(d.units) && d.units[t].Check == int32(state) {
			state = t
			i++
			for m := state; m != 0; m = int(d.units[m].Fail) {
				if tailIdx := d.units[m].Tail; tailIdx != 0 {
					entry := d.tails[tailIdx]
					ts := entry.TailSize
					if i+ts <= n && bytes.Equal(s[i:i+ts], entry.Match[len(entry.Match)-ts:]) {
						emit(i+ts, entry.Match)
					}
				}
			}
		} else if state == 0 {
			i++
		} else {
			state = int(d.units[state].Fail)
		}
	}
}
