package display

import (
	"image"
	"testing"

	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/recovery"
)

func count(img *image.Gray, r image.Rectangle, y uint8) int {
	n := 0
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if img.GrayAt(px, py).Y == y {
				n++
			}
		}
	}
	return n
}

func TestMatrix(t *testing.T) {
	o := New()
	flushes := 0
	o.Flush = func(img *image.Gray) error {
		flushes++
		return nil
	}
	tests := []struct {
		state matrix.State
		cells int
	}{
		{matrix.State{}, 9},
		{matrix.State{Index: 2, Pincode: 40}, 9},
		{matrix.State{Index: 3, Pincode: 0}, 6},
	}
	for _, test := range tests {
		sc := matrix.NewScreen(test.state, matrix.Identity(test.cells))
		o.Matrix(sc)
		cols := sc.Columns()
		for row := 0; row < 3; row++ {
			for col := 0; col < cols; col++ {
				r := cellRect(row, col, cols)
				if o.img.GrayAt(r.Min.X, r.Max.Y-1) != white {
					t.Errorf("%+v: cell (%d,%d) not inverted", test.state, row, col)
				}
				if count(o.img, r, black.Y) == 0 {
					t.Errorf("%+v: cell (%d,%d) has no text", test.state, row, col)
				}
			}
		}
		header := image.Rect(0, 0, Width, headerHeight)
		if count(o.img, header, white.Y) == 0 {
			t.Errorf("%+v: empty header", test.state)
		}
	}
	if flushes != len(tests) {
		t.Errorf("%d flushes, want %d", flushes, len(tests))
	}
}

func TestHighlight(t *testing.T) {
	o := New()
	sc := matrix.NewScreen(matrix.State{Index: 3}, matrix.Identity(6))
	o.Matrix(sc)
	// The middle and right keys select the right column.
	for _, key := range []int{1, 2} {
		row, col := sc.Cell(key)
		if row != 0 || col != 1 {
			t.Fatalf("key %d in cell (%d,%d)", key, row, col)
		}
	}
	r := cellRect(0, 1, 2)
	before := count(o.img, r, white.Y)
	o.Highlight(sc, 2)
	if after := count(o.img, r, black.Y); after != before {
		t.Errorf("highlight inverted %d of %d pixels", after, before)
	}
	if left := cellRect(0, 0, 2); o.img.GrayAt(left.Min.X, left.Max.Y-1) != white {
		t.Error("highlight changed the left cell")
	}
}

func TestWord(t *testing.T) {
	o := New()
	o.Word(recovery.WordPrompt{Position: 3})
	prompt := count(o.img, o.img.Bounds(), white.Y)
	o.Word(recovery.WordPrompt{Fake: "abandon"})
	fake := count(o.img, o.img.Bounds(), white.Y)
	if prompt == 0 || fake == 0 || prompt == fake {
		t.Errorf("prompt screens %d and %d lit pixels", prompt, fake)
	}
}
