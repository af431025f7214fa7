package matrix

// Rand is a source of uniform random numbers in [0,n).
type Rand interface {
	Intn(n int) int
}

// Scramble is a random placement of the choices on the displayed
// cells. Cell i, counted left to right from the bottom row, shows
// choice At(i).
type Scramble struct {
	n    int
	perm [9]int
}

// twoColumn maps each of the 9 keys to a cell of the 2x3 layout. The
// middle column selects the right column.
var twoColumn = [9]int{0, 1, 1, 2, 3, 3, 4, 5, 5}

// NewScramble returns a uniformly random placement of cells choices,
// which must be 6 or 9.
func NewScramble(r Rand, cells int) Scramble {
	s := Identity(cells)
	for i := cells - 1; i >= 1; i-- {
		j := r.Intn(i + 1)
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	}
	return s
}

// Identity places the choices in order.
func Identity(cells int) Scramble {
	if cells != 6 && cells != 9 {
		panic("matrix: scramble must have 6 or 9 cells")
	}
	s := Scramble{n: cells}
	for i := range cells {
		s.perm[i] = i
	}
	return s
}

// Len returns the number of cells.
func (s Scramble) Len() int {
	return s.n
}

// Columns returns the number of cells per row.
func (s Scramble) Columns() int {
	return s.n / 3
}

// At returns the choice placed at cell pos.
func (s Scramble) At(pos int) int {
	return s.perm[pos]
}

// Position returns the cell showing choice, or -1.
func (s Scramble) Position(choice int) int {
	for i := range s.n {
		if s.perm[i] == choice {
			return i
		}
	}
	return -1
}

// Keys maps each of the 9 keys to the choice it selects, when num
// choices are in use. Keys on cells without a choice select choice 0.
func (s Scramble) Keys(num int) [9]int {
	var m [9]int
	for i := range s.n {
		if c := s.perm[i]; c < num {
			m[i] = c
		}
	}
	if s.n == 6 {
		var keys [9]int
		for k, pos := range twoColumn {
			keys[k] = m[pos]
		}
		return keys
	}
	return m
}

// cell returns the cell under key.
func (s Scramble) cell(key int) int {
	if s.n == 6 {
		return twoColumn[key]
	}
	return key
}

// key returns the first key on cell pos.
func (s Scramble) key(pos int) int {
	if s.n == 6 {
		row, col := pos/2, pos%2
		return row*3 + col
	}
	return pos
}
