package matrix

import (
	"testing"

	"seedhammer.com/recovery/rng"
)

func TestScrambleBijection(t *testing.T) {
	r := rng.NewSeeded("bijection")
	for _, cells := range []int{6, 9} {
		for i := 0; i < 1000; i++ {
			s := NewScramble(r, cells)
			seen := make(map[int]bool)
			for pos := 0; pos < cells; pos++ {
				c := s.At(pos)
				if c < 0 || c >= cells || seen[c] {
					t.Fatalf("scramble %v is not a permutation", s.perm)
				}
				seen[c] = true
				if s.Position(c) != pos {
					t.Fatalf("Position(At(%d)) = %d", pos, s.Position(c))
				}
			}
		}
	}
}

func TestScrambleUniform(t *testing.T) {
	r := rng.NewSeeded("uniform")
	var counts [9][9]int
	const n = 9000
	for i := 0; i < n; i++ {
		s := NewScramble(r, 9)
		for pos := 0; pos < 9; pos++ {
			counts[pos][s.At(pos)]++
		}
	}
	for pos, row := range counts {
		for c, k := range row {
			if k < n/9/2 || k > n/9*2 {
				t.Errorf("choice %d at cell %d %d times", c, pos, k)
			}
		}
	}
}

func TestKeys(t *testing.T) {
	s := Identity(9)
	keys := s.Keys(5)
	want := [9]int{0, 1, 2, 3, 4, 0, 0, 0, 0}
	if keys != want {
		t.Errorf("Keys(5) = %v, want %v", keys, want)
	}
	s = Identity(6)
	keys = s.Keys(6)
	want = [9]int{0, 1, 1, 2, 3, 3, 4, 5, 5}
	if keys != want {
		t.Errorf("two column Keys(6) = %v, want %v", keys, want)
	}
	keys = s.Keys(3)
	want = [9]int{0, 1, 1, 2, 0, 0, 0, 0, 0}
	if keys != want {
		t.Errorf("two column Keys(3) = %v, want %v", keys, want)
	}
}

func TestIdentityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Identity(4) didn't panic")
		}
	}()
	Identity(4)
}
