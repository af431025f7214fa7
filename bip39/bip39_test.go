package bip39

import (
	"bytes"
	"strings"
	"testing"

	gobip39 "github.com/tyler-smith/go-bip39"

	"seedhammer.com/recovery/rng"
)

// entropies returns fixed and pseudo-random entropies of every mnemonic
// length from 12 to 24 words.
func entropies() [][]byte {
	r := rng.NewSeeded("entropy")
	var ents [][]byte
	for n := 16; n <= 32; n += 4 {
		for _, fill := range []byte{0x00, 0x7f, 0x80, 0xff} {
			ents = append(ents, bytes.Repeat([]byte{fill}, n))
		}
		for i := 0; i < 25; i++ {
			ent := make([]byte, n)
			for j := range ent {
				ent[j] = byte(r.Intn(256))
			}
			ents = append(ents, ent)
		}
	}
	return ents
}

func TestReferenceImplementation(t *testing.T) {
	for _, ent := range entropies() {
		want, err := gobip39.NewMnemonic(ent)
		if err != nil {
			t.Fatal(err)
		}
		m, err := ParseMnemonic(want)
		if err != nil {
			t.Fatalf("ParseMnemonic(%q): %v", want, err)
		}
		if got := m.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
		got, check := splitMnemonic(m)
		if !bytes.Equal(got, ent) {
			t.Errorf("%q: entropy %x, want %x", want, got, ent)
		}
		if c := checksum(ent); check != c {
			t.Errorf("%q: checksum %d, want %d", want, check, c)
		}
		if w := ChecksumWord(ent); w != m[len(m)-1] {
			t.Errorf("%q: checksum word %d, want %d", want, w, m[len(m)-1])
		}
		valid := len(m) == 12 || len(m) == 18 || len(m) == 24
		if got := ValidSentence([]byte(want)); got != valid {
			t.Errorf("ValidSentence(%q) = %v, want %v", want, got, valid)
		}
		if seed := gobip39.NewSeed(want, "TREZOR"); !bytes.Equal(SentenceSeed([]byte(want), "TREZOR"), seed) {
			t.Fatalf("seed mismatch for %q", want)
		}
	}
}

func TestInvalidMnemonics(t *testing.T) {
	tests := []string{
		"",
		"abandon abandon",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abuot",
	}
	for _, test := range tests {
		if _, err := ParseMnemonic(test); err == nil {
			t.Errorf("ParseMnemonic accepted %q", test)
		}
		if ValidSentence([]byte(test)) {
			t.Errorf("ValidSentence accepted %q", test)
		}
	}
	for _, s := range []string{" ", "abandon  about", strings.Repeat("abandon ", 25) + "art"} {
		if ValidSentence([]byte(s)) {
			t.Errorf("ValidSentence accepted %q", s)
		}
	}
}

func TestChecksumWord(t *testing.T) {
	r := rng.NewSeeded("checksum")
	m := make(Mnemonic, 12)
	for i := 0; i < 1e4; i++ {
		for j := range m {
			m[j] = Word(r.Intn(int(NumWords)))
		}
		want, _ := splitMnemonic(m)
		m[len(m)-1] = ChecksumWord(want)
		if !m.Valid() {
			t.Fatalf("%v: invalid after setting the checksum word", m)
		}
		if got, _ := splitMnemonic(m); !bytes.Equal(got, want) {
			t.Errorf("checksum word changed the entropy")
		}
	}
}

func TestWipe(t *testing.T) {
	m, err := ParseMnemonic("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong")
	if err != nil {
		t.Fatal(err)
	}
	m.Wipe()
	if s := m.String(); s != "" {
		t.Errorf("wiped mnemonic still reads %q", s)
	}
}

func TestLookup(t *testing.T) {
	for i, w := range Wordlist {
		got, ok := Lookup([]byte(w))
		if !ok || got != Word(i) {
			t.Fatalf("Lookup(%q) = %d, %v, want %d", w, got, ok, i)
		}
		if len(w) > MaxWordLen {
			t.Errorf("%q is longer than MaxWordLen", w)
		}
	}
	for _, w := range []string{"", "aban", "abandons", "zzz", "Abandon"} {
		if _, ok := Lookup([]byte(w)); ok {
			t.Errorf("Lookup(%q) succeeded", w)
		}
	}
}
