package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinotd.json")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultConfig, c); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected the defaults to be written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, again); diff != "" {
		t.Errorf("reloaded config (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinotd.json")
	err := os.WriteFile(path, []byte(`{"panelWidth": 240, "panelHeight": 320, "byteOrder": "little"}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.PanelWidth != 240 || c.PanelHeight != 320 || c.Listen != defaultConfig.Listen {
		t.Errorf("unexpected config %+v", c)
	}

	order, err := c.Order()
	if err != nil || order != binary.LittleEndian {
		t.Errorf("expected little-endian, got %v (%v)", order, err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"json":       `{"panelWidth":`,
		"byte order": `{"byteOrder": "middle"}`,
		"panel size": `{"panelWidth": 0}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pinotd.json")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
