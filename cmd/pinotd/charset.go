package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// toUTF8 converts text received in the named charset. An empty name means
// the text is already UTF-8.
func toUTF8(charset string, b []byte) (string, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" || name == "utf-8" || name == "utf8" {
		return string(b), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %v text: %w", charset, err)
	}
	return string(out), nil
}
