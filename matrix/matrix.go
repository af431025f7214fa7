// Package matrix implements word entry on a 3x3 keypad. A word is
// selected in four rounds: three rounds of nine ranges narrowing down
// the dictionary followed by a choice among at most six words. Choices
// are shuffled on the display for every round so the keys pressed
// reveal nothing about the words.
package matrix

import (
	"seedhammer.com/recovery/bip39"
	"seedhammer.com/recovery/wordtable"
)

// Levels is the number of rounds per word.
const Levels = 4

// Keys is the number of keys on the keypad.
const Keys = 9

// State is the position in the entry of a mnemonic.
type State struct {
	// Index counts the rounds completed: Index/Levels is the word being
	// entered and Index%Levels the round.
	Index int
	// Pincode is the base 9 number formed by the choices of the
	// current word, as if the choices were displayed in order.
	Pincode int
}

func (s State) Word() int  { return s.Index / Levels }
func (s State) Level() int { return s.Index % Levels }

// Choices returns the number of choices at s.
func (s State) Choices() int {
	switch s.Level() {
	case 0, 1:
		return wordtable.Choices
	case 2:
		return wordtable.SubRanges(s.Pincode)
	default:
		return s.last().Len()
	}
}

func (s State) last() wordtable.Range {
	return wordtable.SubRange(s.Pincode/wordtable.Choices, s.Pincode%wordtable.Choices)
}

// Selection is the effect of a choice.
type Selection struct {
	// Rank is the chosen word, or -1 if the choice only narrowed the
	// range.
	Rank int
	// Slot is the position of Rank in the mnemonic.
	Slot int
	// Done reports whether Slot is the final word.
	Done bool
}

// Advance applies choice to s for a mnemonic of words words. Choices
// out of range select choice 0. Choosing the final word of the
// mnemonic leaves Index unchanged.
func (s State) Advance(choice, words int) (State, Selection) {
	if choice < 0 || choice >= s.Choices() {
		choice = 0
	}
	if s.Level() < Levels-1 {
		s.Pincode = s.Pincode*wordtable.Choices + choice
		s.Index++
		return s, Selection{Rank: -1}
	}
	sel := Selection{
		Rank: s.last().Start + choice,
		Slot: s.Word(),
	}
	s.Pincode = 0
	if sel.Slot+1 == words {
		sel.Done = true
	} else {
		s.Index++
	}
	return s, sel
}

// Retreat undoes the last choice. At the start of a word it returns to
// the start of the previous word.
func (s State) Retreat() State {
	if s.Level() == 0 {
		if s.Index > 0 {
			s.Index -= Levels
		}
		return s
	}
	s.Index--
	s.Pincode /= wordtable.Choices
	return s
}

// Labels returns the text of each choice at s.
func (s State) Labels() []string {
	n := s.Choices()
	labels := make([]string, n)
	for i := range labels {
		var r wordtable.Range
		switch s.Level() {
		case 0:
			r = wordtable.Group(i)
		case 1:
			r = wordtable.Cell(s.Pincode*wordtable.Choices + i)
		case 2:
			r = wordtable.SubRange(s.Pincode, i)
		default:
			labels[i] = bip39.Wordlist[s.last().Start+i]
			continue
		}
		labels[i] = Label(r.First(), r.Last(), r.PrefixLen)
	}
	return labels
}

// Screen is a displayed matrix.
type Screen struct {
	State    State
	Labels   []string
	Scramble Scramble
	keys     [Keys]int
}

// NewScreen lays out the choices at s. The final round shows two
// columns of words, the others three columns of ranges.
func NewScreen(s State, scr Scramble) *Screen {
	sc := &Screen{
		State:    s,
		Labels:   s.Labels(),
		Scramble: scr,
	}
	sc.keys = scr.Keys(len(sc.Labels))
	return sc
}

// TwoColumn reports whether the screen uses the 2x3 layout.
func (s *Screen) TwoColumn() bool {
	return s.Scramble.Len() == 6
}

func (s *Screen) Columns() int {
	return s.Scramble.Columns()
}

// Text returns the text of the cell at row and col. Row 0 is the
// bottom row. Cells without a choice show "-".
func (s *Screen) Text(row, col int) string {
	c := s.Scramble.At(row*s.Columns() + col)
	if c >= len(s.Labels) {
		return "-"
	}
	return s.Labels[c]
}

// Choice returns the choice selected by key, in [0,9). Key 0 is the
// bottom left key.
func (s *Screen) Choice(key int) int {
	return s.keys[key]
}

// Cell returns the row and column of the cell selected by key.
func (s *Screen) Cell(key int) (row, col int) {
	pos := s.Scramble.cell(key)
	return pos / s.Columns(), pos % s.Columns()
}

// Key returns a key selecting choice, or -1.
func (s *Screen) Key(choice int) int {
	pos := s.Scramble.Position(choice)
	if pos == -1 || choice >= len(s.Labels) {
		return -1
	}
	return s.Scramble.key(pos)
}

// Machine tracks the entry of a mnemonic and scrambles a new screen for
// every round.
type Machine struct {
	words  int
	rand   Rand
	state  State
	screen *Screen
}

func NewMachine(words int, r Rand) *Machine {
	m := &Machine{words: words, rand: r}
	m.enter(State{})
	return m
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Screen() *Screen {
	return m.screen
}

// Press applies key, in [0,9). Pressing the final word of the mnemonic
// keeps the current screen.
func (m *Machine) Press(key int) Selection {
	next, sel := m.state.Advance(m.screen.Choice(key), m.words)
	if sel.Done {
		m.state = next
		return sel
	}
	m.enter(next)
	return sel
}

// Back undoes the last choice and rescrambles.
func (m *Machine) Back() {
	m.enter(m.state.Retreat())
}

// Reset clears the state.
func (m *Machine) Reset() {
	m.state = State{}
	m.screen = nil
}

func (m *Machine) enter(s State) {
	cells := 9
	if s.Level() == Levels-1 {
		cells = 6
	}
	m.state = s
	m.screen = NewScreen(s, NewScramble(m.rand, cells))
}
