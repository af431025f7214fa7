// Package secmem keeps mnemonic words in fixed buffers that are wiped
// after use and, where the platform allows, locked in memory.
package secmem

import (
	"bytes"
	"runtime"
)

const (
	// Slots is the largest number of words.
	Slots = 24
	// SlotLen is the capacity of a word slot. Words are truncated to
	// SlotLen-1 characters.
	SlotLen = 12
)

// Words is a buffer of Slots words.
type Words struct {
	buf    [Slots * SlotLen]byte
	locked bool
}

// NewWords allocates a word buffer and locks it in memory if possible.
func NewWords() *Words {
	w := new(Words)
	w.locked = lock(w.buf[:]) == nil
	return w
}

// Locked reports whether the buffer is excluded from swapping.
func (w *Words) Locked() bool {
	return w.locked
}

func (w *Words) slot(i int) []byte {
	return w.buf[i*SlotLen : (i+1)*SlotLen]
}

// Set stores word in slot i.
func (w *Words) Set(i int, word []byte) {
	s := w.slot(i)
	n := copy(s[:SlotLen-1], word)
	clear(s[n:])
}

// Get returns the word in slot i. The result aliases the buffer.
func (w *Words) Get(i int) []byte {
	s := w.slot(i)
	if n := bytes.IndexByte(s, 0); n >= 0 {
		s = s[:n]
	}
	return s
}

// Join writes the first n words separated by spaces into dst.
func (w *Words) Join(dst *Sentence, n int) {
	dst.Wipe()
	for i := range n {
		if i > 0 {
			dst.buf[dst.n] = ' '
			dst.n++
		}
		dst.n += copy(dst.buf[dst.n:], w.Get(i))
	}
}

// Wipe zeroes every slot.
func (w *Words) Wipe() {
	clear(w.buf[:])
	runtime.KeepAlive(&w.buf)
}

// IsZero reports whether every slot is zero.
func (w *Words) IsZero() bool {
	for _, b := range w.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// Close wipes and unlocks the buffer.
func (w *Words) Close() error {
	w.Wipe()
	if !w.locked {
		return nil
	}
	w.locked = false
	return unlock(w.buf[:])
}

// Sentence is a space separated mnemonic.
type Sentence struct {
	buf [Slots * SlotLen]byte
	n   int
}

// Bytes returns the sentence. The result aliases the buffer.
func (s *Sentence) Bytes() []byte {
	return s.buf[:s.n]
}

func (s *Sentence) Wipe() {
	clear(s.buf[:])
	s.n = 0
	runtime.KeepAlive(&s.buf)
}
