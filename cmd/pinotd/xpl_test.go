package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseXPL(t *testing.T) {
	msg := "xpl-cmnd\n{\nhop=1\nsource=acme-sensor.kitchen\ntarget=*\n}\nosd.basic\n{\ncommand=write\ntext=CO2=812ppm\nrow=1\n}\n"

	x, err := parseXPL(msg)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"command": "write", "text": "CO2=812ppm", "row": "1"}
	if diff := cmp.Diff(want, x.body); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
	if x.messageType != "xpl-cmnd" || x.schema != "osd.basic" || x.source != "acme-sensor.kitchen" || x.target != "*" {
		t.Errorf("unexpected header %+v", x)
	}
}

func TestCompileXPL(t *testing.T) {
	m := xplMessage{
		messageType: "xpl-stat",
		target:      "*",
		schema:      "hbeat.app",
		body:        map[string]string{"interval": "1"},
	}

	x, err := parseXPL(compileXPL(m))
	if err != nil {
		t.Fatal(err)
	}
	if x.source != xplSource || x.schema != "hbeat.app" || x.body["interval"] != "1" {
		t.Errorf("unexpected message %+v", x)
	}
}

func TestParseXPLMalformed(t *testing.T) {
	for _, msg := range []string{"", "xpl-cmnd", "xpl-cmnd\nhop=1\n"} {
		if _, err := parseXPL(msg); err == nil {
			t.Errorf("expected an error for %q", msg)
		}
	}
}

func TestOSDJob(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		ok   bool
	}{
		{"write", map[string]string{"command": "write", "text": "hi"}, true},
		{"row", map[string]string{"text": "hi", "row": "2"}, true},
		{"clear", map[string]string{"command": "clear"}, true},
		{"release", map[string]string{"command": "release"}, true},
		{"bad row", map[string]string{"text": "hi", "row": "two"}, false},
		{"bad command", map[string]string{"command": "explode"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := osdJob(xplMessage{schema: "osd.basic", body: tt.body})
			if (err == nil) != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, err)
			}
		})
	}

	if _, err := osdJob(xplMessage{schema: "hbeat.app"}); err == nil {
		t.Error("expected other schemas to be refused")
	}
}
