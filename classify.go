package segmenter

import "github.com/ericlingit/segmenter/internal/hop"

// specialClass is the rune classification used for special-edge
// emission. notSpecial covers ordinary CJK ideographs,
// which never merge into a run edge.
type specialClass int

const (
	notSpecial specialClass = iota
	classWhitespace
	classCRLF
	classCNDash
	classCNEllipsis
	classIdeographicSpace
	classOther
)

const (
	cnDash            = "—"
	cnEllipsis        = "…"
	ideographicSpace  = "　"
	cjkBasicLowBound  = "一"
	cjkBasicHighBound = "龥"
)

// classify returns the special class of the rune runeBytes.
func classify(runeBytes []byte) specialClass {
	switch len(runeBytes) {
	case 1:
		switch runeBytes[0] {
		case ' ', '\t':
			return classWhitespace
		case '\r', '\n':
			return classCRLF
		}
		return classOther
	case 3:
		s := string(runeBytes)
		switch s {
		case cnDash:
			return classCNDash
		case cnEllipsis:
			return classCNEllipsis
		case ideographicSpace:
			return classIdeographicSpace
		}
		if s >= cjkBasicLowBound && s <= cjkBasicHighBound {
			return notSpecial
		}
		return classOther
	default:
		return classOther
	}
}

// addSpecialEdges walks sentence's rune sequence and emits a
// zero-weight edge spanning every maximal run of a single non-
// not-special class.
func addSpecialEdges(g *DAG, sentence []byte) error {
	runStart := -1
	runClass := notSpecial

	flush := func(end int) {
		if runClass != notSpecial && runStart >= 0 {
			g.AddEdge(runStart, end, 0)
		}
	}

	err := hop.Runes(sentence, func(start, end int) {
		c := classify(sentence[start:end])
		if runStart < 0 {
			runStart, runClass = start, c
			return
		}
		if c != runClass {
			flush(start)
			runStart, runClass = start, c
		}
	})
	if err != nil {
		return err
	}
	flush(len(sentence))
	return nil
}
