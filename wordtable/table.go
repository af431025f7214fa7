// Package wordtable indexes the sorted bip39 word list for selection
// through three rounds of nine choices followed by at most six words.
//
// The index is two packed tables. An entry holds a prefix length in its
// top four bits and an index in the low twelve. table1 maps each of the
// 81 cells to its first entry in table2 and table2 maps each range to its
// first word. Both end with a sentinel.
package wordtable

//go:generate go run gen.go

import (
	"errors"
	"fmt"

	"seedhammer.com/recovery/bip39"
)

// Range is the words [Start, End) together with the number of leading
// characters that tell them apart from their neighbours.
type Range struct {
	Start, End int
	PrefixLen  int
}

// Len is the number of words in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether rank is in the range.
func (r Range) Contains(rank int) bool {
	return r.Start <= rank && rank < r.End
}

// First and Last return the words bounding the range.
func (r Range) First() string { return bip39.Wordlist[r.Start] }
func (r Range) Last() string  { return bip39.Wordlist[r.End-1] }

const (
	// Choices is the number of choices on each of the first three levels.
	Choices = 9
	// Cells is the number of level 1 selectors.
	Cells = Choices * Choices
	// MaxRange is the most words a range holds.
	MaxRange = 6

	prefixShift = 12
	indexMask   = 0xfff
)

var ErrOutOfRange = errors.New("wordtable: rank out of range")

type entry struct {
	index, prefix int
}

var (
	cells  [len(table1)]entry
	ranges [len(table2)]entry
)

func init() {
	for i, v := range table1 {
		cells[i] = entry{int(v & indexMask), int(v >> prefixShift)}
	}
	for i, v := range table2 {
		ranges[i] = entry{int(v & indexMask), int(v >> prefixShift)}
	}
	if len(cells) != Cells+1 || ranges[len(ranges)-1].index != int(bip39.NumWords) {
		panic("wordtable: malformed tables")
	}
}

// Word returns the word with the given rank.
func Word(rank int) (string, error) {
	if rank < 0 || rank >= int(bip39.NumWords) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, rank)
	}
	return bip39.Wordlist[rank], nil
}

// Group returns the words behind choice on the first level.
func Group(choice int) Range {
	checkChoice(choice, Choices)
	return Range{
		Start:     ranges[cells[choice*Choices].index].index,
		End:       ranges[cells[(choice+1)*Choices].index].index,
		PrefixLen: 1,
	}
}

// Cell returns the words behind selector, a pair of first and second
// level choices.
func Cell(selector int) Range {
	checkChoice(selector, Cells)
	return Range{
		Start:     ranges[cells[selector].index].index,
		End:       ranges[cells[selector+1].index].index,
		PrefixLen: cells[selector].prefix,
	}
}

// SubRanges returns the number of third level choices in a cell.
func SubRanges(selector int) int {
	checkChoice(selector, Cells)
	return cells[selector+1].index - cells[selector].index
}

// SubRange returns the words behind the third level choice remainder in
// the cell selector.
func SubRange(selector, remainder int) Range {
	checkChoice(remainder, SubRanges(selector))
	i := cells[selector].index + remainder
	return Range{
		Start:     ranges[i].index,
		End:       ranges[i+1].index,
		PrefixLen: ranges[i].prefix,
	}
}

// Locate returns the choices at each level that select rank.
func Locate(rank int) ([4]int, error) {
	var path [4]int
	if _, err := Word(rank); err != nil {
		return path, err
	}
	for g := 0; g < Choices; g++ {
		if Group(g).Contains(rank) {
			path[0] = g
			break
		}
	}
	for c := 0; c < Choices; c++ {
		if Cell(path[0]*Choices + c).Contains(rank) {
			path[1] = c
			break
		}
	}
	sel := path[0]*Choices + path[1]
	for s := 0; s < SubRanges(sel); s++ {
		if r := SubRange(sel, s); r.Contains(rank) {
			path[2] = s
			path[3] = rank - r.Start
			break
		}
	}
	return path, nil
}

func checkChoice(c, n int) {
	if c < 0 || c >= n {
		panic(fmt.Sprintf("wordtable: choice %d out of range [0,%d)", c, n))
	}
}
