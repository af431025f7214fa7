package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seedhammer.com/recovery/recovery"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"device.toml", `
[recovery]
words = 12
mode = "scrambled"
enforceWordlist = false

[store]
path = "/var/lib/recovery"

[log]
level = "debug"
`},
		{"device.yaml", `
recovery:
  words: 12
  mode: scrambled
  enforceWordlist: false
store:
  path: /var/lib/recovery
log:
  level: debug
`},
	}
	for _, test := range tests {
		c, err := Load(write(t, test.name, test.content))
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		rc, err := c.RecoveryConfig()
		if err != nil {
			t.Fatal(err)
		}
		want := recovery.Config{Words: 12, Mode: recovery.Scrambled}
		if rc != want {
			t.Errorf("%s: recovery config %+v, want %+v", test.name, rc, want)
		}
		if c.Store.Path != "/var/lib/recovery" || c.Log.Level != "debug" {
			t.Errorf("%s: loaded %+v", test.name, c)
		}
		// Unset values keep their defaults.
		if c.Serial.Baud != 115200 || c.Log.RotateHour != 24 {
			t.Errorf("%s: defaults lost: %+v", test.name, c)
		}
	}
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	rc, err := c.RecoveryConfig()
	if err != nil {
		t.Fatal(err)
	}
	if rc.Words != 24 || rc.Mode != recovery.Matrix || !rc.EnforceWordlist {
		t.Errorf("default recovery config %+v", rc)
	}
	if filepath.Base(c.Store.Path) != "db" || c.Store.Path[0] == '~' {
		t.Errorf("store path %q not expanded", c.Store.Path)
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name, content string
		err           error
	}{
		{"words.toml", "[recovery]\nwords = 13\n", recovery.ErrInvalidWordCount},
		{"mode.yaml", "recovery:\n  mode: pinpad\n", nil},
		{"level.yml", "log:\n  level: verbose\n", nil},
		{"device.json", "{}", nil},
		{"broken.toml", "[recovery\n", nil},
	}
	for _, test := range tests {
		_, err := Load(write(t, test.name, test.content))
		if err == nil {
			t.Errorf("%s: loaded invalid config", test.name)
			continue
		}
		if test.err != nil && !errors.Is(err, test.err) {
			t.Errorf("%s: %v, want %v", test.name, err, test.err)
		}
	}
}
