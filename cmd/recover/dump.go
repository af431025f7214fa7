package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// dumper writes display frames to numbered PNG files.
type dumper struct {
	dir     string
	counter int
	log     *zap.Logger
}

func newDumper(dir string, log *zap.Logger) *dumper {
	return &dumper{dir: dir, log: log}
}

func (d *dumper) dump(img *image.Gray) error {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return fmt.Errorf("screenshot: encode: %w", err)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	d.counter++
	name := filepath.Join(d.dir, fmt.Sprintf("screen%04d.png", d.counter))
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	d.log.Debug("screenshot dumped", zap.String("file", name))
	return nil
}
