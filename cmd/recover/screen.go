package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/recovery"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cellStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Align(lipgloss.Center)
	selectedStyle = cellStyle.Reverse(true)
)

// multiDisplay shows every screen on all its displays.
type multiDisplay []recovery.Display

func (m multiDisplay) Matrix(sc *matrix.Screen) {
	for _, d := range m {
		d.Matrix(sc)
	}
}

func (m multiDisplay) Highlight(sc *matrix.Screen, key int) {
	for _, d := range m {
		d.Highlight(sc, key)
	}
}

func (m multiDisplay) Word(p recovery.WordPrompt) {
	for _, d := range m {
		d.Word(p)
	}
}

// screenDisplay remembers the current screen for rendering.
type screenDisplay struct {
	screen    *matrix.Screen
	highlight int
	prompt    *recovery.WordPrompt
}

func (s *screenDisplay) Matrix(sc *matrix.Screen) {
	s.screen, s.highlight, s.prompt = sc, -1, nil
}

func (s *screenDisplay) Highlight(sc *matrix.Screen, key int) {
	s.screen, s.highlight = sc, key
}

func (s *screenDisplay) Word(p recovery.WordPrompt) {
	s.screen, s.prompt = nil, &p
}

// textDisplay prints screens as plain text.
type textDisplay struct {
	w io.Writer
}

func (t *textDisplay) Matrix(sc *matrix.Screen) {
	fmt.Fprintln(t.w, header(sc))
	for row := 2; row >= 0; row-- {
		cells := make([]string, sc.Columns())
		for col := range cells {
			cells[col] = fmt.Sprintf("%-11s", sc.Text(row, col))
		}
		fmt.Fprintln(t.w, strings.TrimRight(strings.Join(cells, " | "), " "))
	}
}

func (t *textDisplay) Highlight(sc *matrix.Screen, key int) {
	row, col := sc.Cell(key)
	fmt.Fprintf(t.w, "> %s\n", sc.Text(row, col))
}

func (t *textDisplay) Word(p recovery.WordPrompt) {
	fmt.Fprintln(t.w, p.String())
}

func header(sc *matrix.Screen) string {
	s := sc.State
	word := recovery.Ordinal(s.Word()+1) + " word"
	if s.Level() == 0 {
		return "Please enter the " + word
	}
	return fmt.Sprintf("%s, round %d of %d", word, s.Level()+1, matrix.Levels)
}

// renderMatrix draws the cells of sc with the bottom row last. The cell
// under highlight is reversed; -1 highlights nothing.
func renderMatrix(sc *matrix.Screen, highlight int) string {
	hr, hc := -1, -1
	if highlight >= 0 {
		hr, hc = sc.Cell(highlight)
	}
	width := 11
	if sc.TwoColumn() {
		width = 17
	}
	var rows []string
	for row := 2; row >= 0; row-- {
		var cells []string
		for col := range sc.Columns() {
			style := cellStyle
			if row == hr && col == hc {
				style = selectedStyle
			}
			cells = append(cells, style.Width(width).Render(sc.Text(row, col)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
