// Package display renders the recovery screens on a 128x64 monochrome
// OLED framebuffer.
package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/recovery"
)

const (
	Width  = 128
	Height = 64

	// headerHeight is the space above the matrix.
	headerHeight = 27
	cellHeight   = (Height - headerHeight - 1) / 3
)

var (
	black = color.Gray{Y: 0x00}
	white = color.Gray{Y: 0xff}
)

// OLED is a framebuffer implementing recovery.Display.
type OLED struct {
	img  *image.Gray
	face font.Face
	// Flush is called with the framebuffer after every update.
	Flush func(img *image.Gray) error
	Log   *zap.Logger
}

var _ recovery.Display = (*OLED)(nil)

func New() *OLED {
	return &OLED{
		img:  image.NewGray(image.Rect(0, 0, Width, Height)),
		face: basicfont.Face7x13,
	}
}

// Image returns the framebuffer.
func (o *OLED) Image() *image.Gray {
	return o.img
}

func (o *OLED) Matrix(sc *matrix.Screen) {
	o.clear()
	s := sc.State
	word := recovery.Ordinal(s.Word()+1) + " word"
	if s.Level() == 0 {
		o.text(Width/2, 11, "Please enter the", white)
		o.text(Width/2, 23, word, white)
	} else {
		o.text(Width/2, 11, word, white)
		o.progress(s.Level())
	}
	cols := sc.Columns()
	for row := 0; row < 3; row++ {
		for col := 0; col < cols; col++ {
			r := cellRect(row, col, cols)
			draw.Draw(o.img, r, image.NewUniform(white), image.Point{}, draw.Src)
			o.text((r.Min.X+r.Max.X)/2, r.Max.Y-2, sc.Text(row, col), black)
		}
	}
	o.flush()
}

// Highlight inverts the cell selected by key.
func (o *OLED) Highlight(sc *matrix.Screen, key int) {
	row, col := sc.Cell(key)
	r := cellRect(row, col, sc.Columns())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := o.img.GrayAt(x, y)
			o.img.SetGray(x, y, color.Gray{Y: ^c.Y})
		}
	}
	o.flush()
}

func (o *OLED) Word(p recovery.WordPrompt) {
	o.clear()
	o.text(Width/2, 11, "Enter recovery word", white)
	if p.Position == 0 {
		o.text(Width/2, 36, "Please type", white)
		o.text(Width/2, 52, p.Fake, white)
	} else {
		o.text(Width/2, 36, "Please type the", white)
		o.text(Width/2, 52, recovery.Ordinal(p.Position)+" word", white)
	}
	o.flush()
}

// cellRect returns the inverted area of a cell. Row 0 is the bottom
// row.
func cellRect(row, col, cols int) image.Rectangle {
	w := Width / cols
	y1 := Height - row*cellHeight
	r := image.Rect(col*w, y1-cellHeight, (col+1)*w, y1)
	return r.Inset(1)
}

func (o *OLED) clear() {
	draw.Draw(o.img, o.img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)
}

// text draws s centered at x with its baseline at y.
func (o *OLED) text(x, y int, s string, c color.Gray) {
	d := &font.Drawer{
		Dst:  o.img,
		Src:  image.NewUniform(c),
		Face: o.face,
	}
	w := d.MeasureString(s)
	d.Dot = fixed.Point26_6{X: fixed.I(x) - w/2, Y: fixed.I(y)}
	d.DrawString(s)
}

// progress draws a bar under the header showing the rounds completed
// for the current word.
func (o *OLED) progress(level int) {
	r := newRasterizer(o.img, 2)
	y := headerHeight - 6
	r.Move(image.Pt(8, y))
	r.Line(image.Pt(8+(Width-16)*level/matrix.Levels, y))
	r.Rasterize()
}

func (o *OLED) flush() {
	if o.Flush == nil {
		return
	}
	if err := o.Flush(o.img); err != nil && o.Log != nil {
		o.Log.Warn("display flush", zap.Error(err))
	}
}

type rasterizer struct {
	p       image.Point
	started bool
	dasher  *rasterx.Dasher
}

func newRasterizer(img draw.Image, strokeWidth float64) *rasterizer {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	r := &rasterizer{
		dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
	}
	r.dasher.SetStroke(fixed.Int26_6(strokeWidth*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	r.dasher.SetColor(white)
	return r
}

func (r *rasterizer) Line(p image.Point) {
	if !r.started {
		r.dasher.Start(rasterx.ToFixedP(float64(r.p.X), float64(r.p.Y)))
		r.started = true
	}
	r.dasher.Line(rasterx.ToFixedP(float64(p.X), float64(p.Y)))
}

func (r *rasterizer) Move(p image.Point) {
	if r.started {
		r.dasher.Stop(false)
		r.started = false
	}
	r.p = p
}

func (r *rasterizer) Rasterize() {
	if r.started {
		r.dasher.Stop(false)
	}
	r.dasher.Draw()
}
