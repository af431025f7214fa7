// Package golden compares test output with gzip compressed files
// recorded under testdata.
package golden

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Compare checks got against the golden file at path, or rewrites the
// file if update is set. A non-empty dumpDir receives got and, on
// mismatch, the recorded contents for inspection.
func Compare(path string, update bool, dumpDir string, got []byte) error {
	bpath := filepath.Base(path)
	bpath = bpath[:len(bpath)-len(filepath.Ext(bpath))]
	if dumpDir != "" {
		if err := os.WriteFile(filepath.Join(dumpDir, bpath), got, 0o640); err != nil {
			return err
		}
	}
	if update {
		buf := new(bytes.Buffer)
		w, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		w.Write(got)
		if err := w.Close(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return os.WriteFile(path, buf.Bytes(), 0o640)
	}
	want, err := read(path)
	if err != nil {
		return err
	}
	gotLines := bytes.Split(got, []byte("\n"))
	wantLines := bytes.Split(want, []byte("\n"))
	mismatches := 0
	first := -1
	for i := range min(len(gotLines), len(wantLines)) {
		if !bytes.Equal(gotLines[i], wantLines[i]) {
			mismatches++
			if first == -1 {
				first = i
			}
		}
	}
	if mismatches == 0 && len(gotLines) == len(wantLines) {
		return nil
	}
	if dumpDir != "" {
		if err := os.WriteFile(filepath.Join(dumpDir, bpath+".orig"), want, 0o640); err != nil {
			return err
		}
	}
	if first == -1 {
		return fmt.Errorf("%s: %d lines, golden has %d", path, len(gotLines), len(wantLines))
	}
	return fmt.Errorf("%s: %d/%d lines differ, first at line %d:\n got: %s\nwant: %s",
		path, mismatches, len(wantLines), first+1, gotLines[first], wantLines[first])
}

func read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
