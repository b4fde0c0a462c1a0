package source

import (
	"testing"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"emacs style", "# -*- coding: latin-1 -*-\nx = 1\n", "latin-1"},
		{"vim style", "# vim: set fileencoding=cp1251 :\nx = 1\n", "cp1251"},
		{"second line", "#!/usr/bin/env python\n# coding: utf-8\n", "utf-8"},
		{"third line ignored", "x = 1\ny = 2\n# coding: latin-1\n", ""},
		{"no cookie", "x = 1\n", ""},
		{"not a comment", "coding: latin-1\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectEncoding([]byte(tt.src)); got != tt.want {
				t.Fatalf("detectEncoding = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeSource_Latin1(t *testing.T) {
	// "café" in ISO 8859-1: the é is a single 0xE9 byte.
	raw := []byte{'c', 'a', 'f', 0xE9}
	out, transcoded, err := decodeSource(raw, "latin-1")
	if err != nil {
		t.Fatalf("decodeSource: %v", err)
	}
	if !transcoded {
		t.Fatalf("expected transcoded=true")
	}
	if got := string(out); got != "café" {
		t.Fatalf("decodeSource = %q, want %q", got, "café")
	}
}

func TestDecodeSource_UTF8Passthrough(t *testing.T) {
	raw := []byte("x = 'é'\n")
	out, transcoded, err := decodeSource(raw, "utf-8")
	if err != nil {
		t.Fatalf("decodeSource: %v", err)
	}
	if transcoded {
		t.Fatalf("utf-8 source must pass through untouched")
	}
	if string(out) != string(raw) {
		t.Fatalf("content changed on passthrough")
	}
}

func TestDecodeSource_Unknown(t *testing.T) {
	if _, _, err := decodeSource([]byte("x"), "no-such-encoding"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
