package secmem

import (
	"strings"
	"testing"
)

func TestWords(t *testing.T) {
	w := NewWords()
	defer w.Close()
	w.Set(0, []byte("abandon"))
	w.Set(1, []byte("ability"))
	w.Set(2, []byte("abstraction"+"ism"))
	if got := string(w.Get(2)); got != "abstraction" {
		t.Errorf("long word stored as %q", got)
	}
	w.Set(1, []byte("zoo"))
	if got := string(w.Get(1)); got != "zoo" {
		t.Errorf("overwritten slot holds %q", got)
	}
	var s Sentence
	defer s.Wipe()
	w.Join(&s, 3)
	if got, want := string(s.Bytes()), "abandon zoo abstraction"; got != want {
		t.Errorf("Join = %q, want %q", got, want)
	}
	w.Wipe()
	if !w.IsZero() {
		t.Error("Wipe left data")
	}
	s.Wipe()
	if len(s.Bytes()) != 0 {
		t.Error("sentence not empty after Wipe")
	}
}

func TestLongestSentence(t *testing.T) {
	w := NewWords()
	defer w.Close()
	long := strings.Repeat("x", SlotLen-1)
	for i := range Slots {
		w.Set(i, []byte(long))
	}
	var s Sentence
	w.Join(&s, Slots)
	if want := Slots*SlotLen - 1; len(s.Bytes()) != want {
		t.Errorf("sentence length %d, want %d", len(s.Bytes()), want)
	}
}
