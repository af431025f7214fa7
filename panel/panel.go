// Package panel drives the 128x64 SSD1306 OLED of the device over SPI.
package panel

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"
)

const (
	Width  = 128
	Height = 64

	pages = Height / 8
)

var (
	pinRST = bcm283x.GPIO22
	pinDC  = bcm283x.GPIO23
)

type Panel struct {
	spi   spi.PortCloser
	conn  spi.Conn
	maxTx int
	buf   [Width * pages]byte
}

func Open() (*Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("panel: %w", err)
	}
	pn := &Panel{spi: p, conn: c, maxTx: 4096}
	if lim, ok := c.(conn.Limits); ok {
		pn.maxTx = lim.MaxTxSize()
	}
	if err := pn.setup(); err != nil {
		pn.Close()
		return nil, err
	}
	return pn, nil
}

func (p *Panel) Close() error {
	if p.spi == nil {
		return nil
	}
	err := p.spi.Close()
	p.spi = nil
	p.conn = nil
	return err
}

func (p *Panel) command(cmd ...byte) error {
	if err := pinDC.Out(gpio.Low); err != nil {
		return err
	}
	return p.conn.Tx(cmd, nil)
}

func (p *Panel) setup() error {
	for _, pin := range []gpio.PinOut{pinRST, pinDC} {
		if err := pin.Out(gpio.High); err != nil {
			return fmt.Errorf("panel: %w", err)
		}
	}
	pinRST.Out(gpio.Low)
	time.Sleep(10 * time.Millisecond)
	pinRST.Out(gpio.High)
	time.Sleep(10 * time.Millisecond)

	var cmdErr error
	command := func(cmd ...byte) {
		if cmdErr != nil {
			return
		}
		cmdErr = p.command(cmd...)
	}
	command(0xae /* DISPLAYOFF */)
	command(0xd5 /* SETDISPLAYCLOCKDIV */, 0x80)
	command(0xa8 /* SETMULTIPLEX */, Height-1)
	command(0xd3 /* SETDISPLAYOFFSET */, 0x00)
	command(0x40 /* SETSTARTLINE */)
	command(0x8d /* CHARGEPUMP */, 0x14)
	command(0x20 /* MEMORYMODE */, 0x00 /* horizontal */)
	command(0xa1 /* SEGREMAP */)
	command(0xc8 /* COMSCANDEC */)
	command(0xda /* SETCOMPINS */, 0x12)
	command(0x81 /* SETCONTRAST */, 0xcf)
	command(0xd9 /* SETPRECHARGE */, 0xf1)
	command(0xdb /* SETVCOMDETECT */, 0x40)
	command(0xa4 /* DISPLAYALLON_RESUME */)
	command(0xa6 /* NORMALDISPLAY */)
	command(0xaf /* DISPLAYON */)
	if cmdErr != nil {
		return fmt.Errorf("panel: SPI command: %w", cmdErr)
	}
	return nil
}

// Draw sends img to the panel.
func (p *Panel) Draw(img *image.Gray) error {
	if p.conn == nil {
		return errors.New("panel: closed")
	}
	pack(&p.buf, img)
	if err := p.command(0x21 /* COLUMNADDR */, 0, Width-1, 0x22 /* PAGEADDR */, 0, pages-1); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	if err := pinDC.Out(gpio.High); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	for buf := p.buf[:]; len(buf) > 0; {
		n := min(len(buf), p.maxTx)
		if err := p.conn.Tx(buf[:n], nil); err != nil {
			return fmt.Errorf("panel: blit: %w", err)
		}
		buf = buf[n:]
	}
	return nil
}

// pack converts img to the panel memory layout: pages of 8 rows, one
// byte per column with the top row in the least significant bit.
// Pixels brighter than half intensity are lit.
func pack(dst *[Width * pages]byte, img *image.Gray) {
	clear(dst[:])
	b := img.Bounds()
	for y := range Height {
		for x := range Width {
			if !image.Pt(b.Min.X+x, b.Min.Y+y).In(b) {
				continue
			}
			if img.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= 0x80 {
				dst[(y/8)*Width+x] |= 1 << (y % 8)
			}
		}
	}
}
