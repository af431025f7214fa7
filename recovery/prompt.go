package recovery

import (
	"fmt"

	"seedhammer.com/recovery/matrix"
)

// Display renders the recovery screens.
type Display interface {
	// Matrix shows a round of matrix entry.
	Matrix(sc *matrix.Screen)
	// Highlight marks the word chosen by key in the final round.
	Highlight(sc *matrix.Screen, key int)
	// Word asks for a word in scrambled entry.
	Word(p WordPrompt)
}

// WordPrompt asks for the word at Position, counted from 1. Position 0
// asks for the Fake word which is discarded.
type WordPrompt struct {
	Position int
	Fake     string
}

func (p WordPrompt) String() string {
	if p.Position == 0 {
		return fmt.Sprintf("Enter the word %q", p.Fake)
	}
	return fmt.Sprintf("Enter the %s word", Ordinal(p.Position))
}

// Ordinal formats n as "1st", "2nd" and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if r := n % 100; r >= 11 && r <= 13 {
		suffix = "th"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
