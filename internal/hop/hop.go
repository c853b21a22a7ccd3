// Package hop implements the UTF-8 rune hopper: given a
// leading byte, how many bytes the rune it starts occupies. It is
// shared by the top-level rune walker and the HMM's rune-sequence
// extraction so both see exactly the same notion of a rune boundary.
package hop

import "github.com/ericlingit/segmenter/internal/errs"

// Len returns the byte length (1-4) of the rune whose leading byte is
// b, classified from its leading bits.
func Len(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// Runes walks s and calls emit(start, end) for every rune boundary.
// It returns a bad-encoding error if a hop would extend past the end
// of s.
func Runes(s []byte, emit func(start, end int)) error {
	i := 0
	n := len(s)
	for i < n {
		l := Len(s[i])
		if i+l > n {
			return errs.BadEncoding("hop: rune at offset %d extends past input (len %d, have %d)", i, l, n-i)
		}
		emit(i, i+l)
		i += l
	}
	return nil
}
