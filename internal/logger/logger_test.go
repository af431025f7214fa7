package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seedhammer.com/recovery/config"
)

func TestConsole(t *testing.T) {
	buf := new(bytes.Buffer)
	log, done, err := New(config.Log{Level: "info"}, buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("shown")
	if err := done(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected console output %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("level missing from %q", out)
	}
}

func TestFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "device")
	log, done, err := New(config.Log{Level: "debug", Path: prefix, MaxAgeHour: 24, RotateHour: 24}, nil)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("session started")
	if err := done(); err != nil {
		t.Fatal(err)
	}
	files, err := filepath.Glob(prefix + "_*.log")
	if err != nil || len(files) != 1 {
		t.Fatalf("log files %v: %v", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	var line struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("%q: %v", data, err)
	}
	if line.Level != "DEBUG" || line.Msg != "session started" {
		t.Errorf("logged %+v", line)
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, _, err := New(config.Log{Level: "loud"}, nil); err == nil {
		t.Error("accepted invalid level")
	}
}
