package main

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestToUTF8(t *testing.T) {
	sjis, err := japanese.ShiftJIS.NewEncoder().String("本日は晴天")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		charset string
		in      []byte
		want    string
	}{
		{"", []byte("plain"), "plain"},
		{"UTF-8", []byte("気温 25℃"), "気温 25℃"},
		{"shift_jis", []byte(sjis), "本日は晴天"},
		{"iso-8859-1", []byte{'c', 'a', 'f', 0xe9}, "café"},
	}

	for _, tt := range tests {
		got, err := toUTF8(tt.charset, tt.in)
		if err != nil {
			t.Errorf("%v: %v", tt.charset, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v: expected %q got %q", tt.charset, tt.want, got)
		}
	}
}

func TestToUTF8Unknown(t *testing.T) {
	if _, err := toUTF8("klingon", []byte("x")); err == nil {
		t.Error("expected an error for an unknown charset")
	}
}
