package config

import (
	"os"
	"path/filepath"
	"testing"

	"pystrfmt/internal/format"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDecodesOptions(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[format]
quotes = "single"
target-version = "py311"
line-width = 100
normalize-hex-escapes = true
`)

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	opts := m.Config.Options()
	if opts.Quotes != format.QuoteSingle {
		t.Errorf("quotes = %v", opts.Quotes)
	}
	if opts.Target != format.Py311 {
		t.Errorf("target = %v", opts.Target)
	}
	if opts.LineWidth != 100 {
		t.Errorf("line width = %d", opts.LineWidth)
	}
	if !opts.NormalizeHexEscapes {
		t.Error("hex escapes should be on")
	}
}

func TestLoadWalksUpward(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[format]\nquotes = \"preserve\"\n")
	nested := filepath.Join(dir, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
	if m.Config.Options().Quotes != format.QuotePreserve {
		t.Errorf("quotes = %v", m.Config.Options().Quotes)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("should not find a manifest in an empty temp dir")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[format]\nquotes = \"fancy\"\n")

	if _, _, err := Load(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestEmptyConfigUsesDefaults(t *testing.T) {
	var c Config
	opts := c.Options()
	if opts.Quotes != format.QuoteDouble {
		t.Errorf("default quotes = %v", opts.Quotes)
	}
	if opts.Target != format.Py312 {
		t.Errorf("default target = %v", opts.Target)
	}
}
