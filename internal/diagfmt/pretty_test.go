package diagfmt

import (
	"strings"
	"testing"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/lexer"
	"pystrfmt/internal/source"
)

func TestPrettyRendersHeadingAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 'oops\ny = 1\n"))

	bag := diag.NewBag(8)
	lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		t.Fatal("expected an unterminated string diagnostic")
	}
	bag.Sort()

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "demo.py:1:") {
		t.Fatalf("missing position in output:\n%s", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Fatalf("missing severity in output:\n%s", out)
	}
	if !strings.Contains(out, "x = 'oops") || !strings.Contains(out, "^") {
		t.Fatalf("missing source context in output:\n%s", out)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 'hi'\n"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.NopReporter{}})

	var sb strings.Builder
	if err := FormatTokensPretty(&sb, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "String") || !strings.Contains(out, "at 1:") {
		t.Fatalf("unexpected token dump:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 1\n"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.NopReporter{}})

	var sb strings.Builder
	if err := FormatTokensJSON(&sb, toks); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "\"kind\"") {
		t.Fatalf("unexpected JSON:\n%s", sb.String())
	}
}
