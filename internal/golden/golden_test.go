package golden

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt.gz")
	want := []byte("first\nsecond\n")
	if err := Compare(path, true, "", want); err != nil {
		t.Fatal(err)
	}
	if err := Compare(path, false, "", want); err != nil {
		t.Errorf("recorded contents differ: %v", err)
	}
	err := Compare(path, false, dir, []byte("first\nthird\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("mismatch reported as %v", err)
	}
	orig, err := os.ReadFile(filepath.Join(dir, "out.txt.orig"))
	if err != nil || string(orig) != string(want) {
		t.Errorf("dumped %q: %v", orig, err)
	}
	if err := Compare(path, false, "", []byte("first\n")); err == nil {
		t.Error("shorter output matched")
	}
	if err := Compare(filepath.Join(dir, "missing.gz"), false, "", want); err == nil {
		t.Error("missing golden file matched")
	}
}
