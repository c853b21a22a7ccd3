package segmenter

import (
	"strings"
	"testing"

	"github.com/ericlingit/segmenter/internal/dict"
	"github.com/ericlingit/segmenter/internal/hmm"
)

func concatTokens(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t)
	}
	return sb.String()
}

// With an empty dictionary and a trivial HMM the rune chain is the
// only feasible path, so every rune becomes its own token.
func TestCutEmptyDictAndTrivialHMM(t *testing.T) {
	d := dict.New()
	d.Finalize()
	h := hmm.New() // untrained: trivial

	tk := New(d, h)
	sentence := "在春风吹拂的季节"
	tokens, err := tk.Cut(sentence, true)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}

	wantRunes := []rune(sentence)
	if len(tokens) != len(wantRunes) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(wantRunes), tokens)
	}
	for i, r := range wantRunes {
		if tokens[i] != string(r) {
			t.Fatalf("token %d = %q, want %q", i, tokens[i], string(r))
		}
	}
}

func TestCutPartitionProperty(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("雪花"), 10)
	d.AddWord([]byte("最终"), 10)
	d.AddWord([]byte("果实"), 10)
	d.Finalize()

	tk := New(d, nil)
	sentence := "而雪花是最终的果实"
	tokens, err := tk.Cut(sentence, false)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if concatTokens(tokens) != sentence {
		t.Fatalf("concatenation = %q, want %q", concatTokens(tokens), sentence)
	}
}

func TestCutPicksDictionaryWords(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("雪花"), 10)
	d.AddWord([]byte("最终"), 10)
	d.AddWord([]byte("果实"), 10)
	d.Finalize()

	tk := New(d, nil)
	sentence := "而雪花是最终的果实"
	tokens, err := tk.Cut(sentence, false)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}

	found := map[string]bool{}
	for _, tok := range tokens {
		found[tok] = true
	}
	for _, want := range []string{"雪花", "最终", "果实"} {
		if !found[want] {
			t.Fatalf("expected token %q among %v", want, tokens)
		}
	}
}

func rune2bytes(s string) [][]byte {
	var out [][]byte
	for _, r := range s {
		out = append(out, []byte(string(r)))
	}
	return out
}

func TestCutRuneBoundaryProperty(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("国"), 5)
	d.Finalize()
	h := hmm.New()
	h.Train(rune2bytes("他是中国人"), []int{hmm.Single, hmm.Single, hmm.Begin, hmm.Middle, hmm.End})
	h.Train(rune2bytes("中国人很好"), []int{hmm.Begin, hmm.Middle, hmm.End, hmm.Single, hmm.Single})
	h.Normalize()

	tk := New(d, h)
	sentence := "中国人在中国"
	tokens, err := tk.Cut(sentence, true)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if r == 0xFFFD {
				t.Fatalf("token %q contains a decode error, not on a rune boundary", tok)
			}
		}
	}
	if concatTokens(tokens) != sentence {
		t.Fatalf("concatenation = %q, want %q", concatTokens(tokens), sentence)
	}
}

// A dictionary-and-HMM cut must partition the input byte-for-byte,
// with every cut on a rune boundary.
func TestCutDictAndHMMPartitions(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("春风"), 20)
	d.AddWord([]byte("吹拂"), 15)
	d.AddWord([]byte("季节"), 20)
	d.AddWord([]byte("起舞"), 10)
	d.Finalize()

	h := hmm.New()
	h.Train(rune2bytes("他是中国人"), []int{hmm.Single, hmm.Single, hmm.Begin, hmm.Middle, hmm.End})
	h.Train(rune2bytes("中国人很好"), []int{hmm.Begin, hmm.Middle, hmm.End, hmm.Single, hmm.Single})
	h.Normalize()

	tk := New(d, h)
	sentence := "在春风吹拂的季节翩翩起舞"
	tokens, err := tk.Cut(sentence, true)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if concatTokens(tokens) != sentence {
		t.Fatalf("concatenation = %q, want %q", concatTokens(tokens), sentence)
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if r == 0xFFFD {
				t.Fatalf("token %q is not cut on a rune boundary", tok)
			}
		}
	}
}

func TestCutIterExhausted(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("你好"), 10)
	d.Finalize()

	tk := New(d, nil)
	it, err := tk.CutIter([]byte("你好"), false)
	if err != nil {
		t.Fatalf("CutIter: %v", err)
	}

	tok, err := it.Next()
	if err != nil || string(tok) != "你好" {
		t.Fatalf("Next = %q, %v", tok, err)
	}
	if _, err := it.Next(); Code(err) != CodeExhausted {
		t.Fatalf("exhausted iterator: Code(err) = %d, want %d", Code(err), CodeExhausted)
	}
}

func TestCutParallelMatchesSequentialCut(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("春风"), 10)
	d.AddWord([]byte("季节"), 10)
	d.Finalize()

	tk := New(d, nil)
	sentences := []string{"春风吹拂", "美好的季节", "你好世界"}

	var want []string
	for _, s := range sentences {
		toks, err := tk.Cut(s, false)
		if err != nil {
			t.Fatalf("Cut: %v", err)
		}
		want = append(want, toks...)
	}

	got, err := tk.CutParallel(sentences, false, 4, true)
	if err != nil {
		t.Fatalf("CutParallel: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("CutParallel produced %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddWordAffectsSubsequentCuts(t *testing.T) {
	d := dict.New()
	d.AddWord([]byte("北京"), 50)
	d.AddWord([]byte("大学"), 50)
	d.Finalize()

	tk := New(d, nil)
	if err := tk.AddWord("北京大学", 0); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	tokens, err := tk.Cut("北京大学", false)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != "北京大学" {
		t.Fatalf("tokens = %v, want a single 北京大学 token", tokens)
	}
}

func TestNewFromFilesMissingDictionaryIsIOError(t *testing.T) {
	_, err := NewFromFiles("/no/such/dictionary.txt", "")
	if err == nil {
		t.Fatal("expected an error for a missing dictionary file")
	}
	if Code(err) != CodeIO {
		t.Fatalf("Code(err) = %d, want %d", Code(err), CodeIO)
	}
}

func TestAddWordWithoutDictionaryErrors(t *testing.T) {
	tk := New(nil, nil)
	if err := tk.AddWord("x", 1); err == nil {
		t.Fatal("expected error adding a word with no dictionary attached")
	}
}
