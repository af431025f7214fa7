// package bip39 represents and converts bitcoin bip39 mnemonic phrases.
package bip39

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/crypto/pbkdf2"
)

type Word int

type Mnemonic []Word

// Wordlist is the sorted English word list. Word w is Wordlist[w].
var Wordlist = wordlists.English

const NumWords = Word(2048)

// MaxWordLen is the length of the longest word in the list.
const MaxWordLen = 8

const wordBits = 11

var ErrInvalidChecksum = errors.New("bip39: invalid checksum")

func init() {
	if len(Wordlist) != int(NumWords) {
		panic("bip39: unexpected word list length")
	}
}

func LabelFor(w Word) string {
	if !w.valid() {
		return ""
	}
	return Wordlist[w]
}

func (w Word) valid() bool {
	return w >= 0 && w < NumWords
}

// Lookup returns the word exactly matching w.
func Lookup(w []byte) (Word, bool) {
	i := sort.Search(len(Wordlist), func(i int) bool {
		return Wordlist[i] >= string(w)
	})
	if i == len(Wordlist) || Wordlist[i] != string(w) {
		return -1, false
	}
	return Word(i), true
}

// Valid reports whether the mnemonic checksum is correct.
func (m Mnemonic) Valid() bool {
	// Panics in splitMnemonic.
	if len(m) == 0 || len(m)%3 != 0 {
		return false
	}
	ent, _ := splitMnemonic(m)
	last := m[len(m)-1]
	return ChecksumWord(ent) == last
}

func (m Mnemonic) String() string {
	s := new(strings.Builder)
	for _, w := range m {
		if s.Len() > 0 {
			s.WriteByte(' ')
		}
		s.WriteString(LabelFor(w))
	}
	return s.String()
}

// Wipe overwrites the mnemonic with invalid words.
func (m Mnemonic) Wipe() {
	for i := range m {
		m[i] = -1
	}
}

func splitMnemonic(m Mnemonic) (entropy []byte, checksum byte) {
	ent := big.NewInt(0)
	shift11 := big.NewInt(1 << wordBits)
	for _, w := range m {
		ent.Mul(ent, shift11)
		ent.Or(ent, big.NewInt(int64(w)))
	}
	if len(m)%3 != 0 {
		panic("mnemonic length not divisible with 3")
	}
	checkBits := len(m) / 3
	check := big.NewInt(0).And(ent, big.NewInt(1<<checkBits-1)).Int64()
	ent.Div(ent, big.NewInt(1<<checkBits))
	// Pad entropy bytes because BIP39 checksum is sensitive to
	// leading zeros.
	entBits := len(m)*wordBits - checkBits
	entBytes := ent.Bytes()
	padding := bytes.Repeat([]byte{0}, entBits/8-len(entBytes))
	entBytes = append(padding, entBytes...)
	return entBytes, byte(check)
}

func checksum(entropy []byte) byte {
	h := sha256.New()
	h.Write(entropy)
	check := h.Sum(nil)[0]
	checkBits := len(entropy) / 4
	if checkBits > 8 {
		panic("entropy too long")
	}
	return check >> (8 - checkBits)
}

func ChecksumWord(entropy []byte) Word {
	checkBits := len(entropy) / 4
	last := entropy[len(entropy)-1]
	w := Word(last)<<checkBits | Word(checksum(entropy))
	return w % NumWords
}

// ValidSentence reports whether sentence is a space separated 12, 18 or
// 24 word mnemonic with a correct checksum. Only the complete sentence
// is judged; it doesn't report which word is wrong.
func ValidSentence(sentence []byte) bool {
	var words [24]Word
	m := Mnemonic(words[:0])
	defer Mnemonic(words[:]).Wipe()
	for len(sentence) > 0 {
		w := sentence
		if i := bytes.IndexByte(sentence, ' '); i >= 0 {
			w, sentence = sentence[:i], sentence[i+1:]
		} else {
			sentence = nil
		}
		if len(m) == len(words) {
			return false
		}
		idx, ok := Lookup(w)
		if !ok {
			return false
		}
		m = append(m, idx)
	}
	switch len(m) {
	case 12, 18, 24:
		return m.Valid()
	}
	return false
}

// SentenceSeed derives the bip39 seed from a raw sentence. The sentence
// need not be a valid mnemonic, which is what a device does when the word
// list isn't enforced.
func SentenceSeed(sentence []byte, password string) []byte {
	return pbkdf2.Key(sentence, []byte("mnemonic"+password), 2048, 64, sha512.New)
}

// ParseMnemonic parses a space separated mnemonic and verifies its
// checksum.
func ParseMnemonic(mnemonic string) (Mnemonic, error) {
	words := strings.Fields(mnemonic)
	if len(words) == 0 || len(words)%3 != 0 {
		return nil, fmt.Errorf("bip39: invalid mnemonic length %d", len(words))
	}
	m := make(Mnemonic, len(words))
	for i, w := range words {
		idx, valid := Lookup([]byte(w))
		if !valid {
			return nil, fmt.Errorf("bip39: unknown word: %q", w)
		}
		m[i] = idx
	}
	if !m.Valid() {
		return nil, ErrInvalidChecksum
	}
	return m, nil
}
