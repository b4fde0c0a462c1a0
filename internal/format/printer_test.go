package format

import (
	"errors"
	"fmt"
	"testing"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/lexer"
	"pystrfmt/internal/pyparse"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

func TestFormatFileCopiesNonStringBytes(t *testing.T) {
	src := "import os  # keep me\n\ndef f(x):\n    return x + 1\n"
	got := formatSrc(t, src, Options{Quotes: QuoteDouble, Target: Py312})
	if got != src {
		t.Fatalf("non-string bytes changed:\n%q\n%q", src, got)
	}
}

func TestFormatFileRewritesOnlyLiterals(t *testing.T) {
	src := "name = 'world'  # comment stays\nprint(f'hi {name}')\n"
	want := "name = \"world\"  # comment stays\nprint(f\"hi {name}\")\n"
	got := formatSrc(t, src, Options{Quotes: QuoteDouble, Target: Py312})
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatFileIdempotent(t *testing.T) {
	sources := []string{
		"x = 'abc'\n",
		"x = 'it\\'s'\n",
		"x = f'{d[\"k\"]}'\n",
		"x = f\"{ {1: 2} }\"\n",
		"x = f\"{value = }\"\n",
		"x = 'a' 'b' 'c'\n",
		"x = ('first part '\n     'second part')\n",
		"y = f\"\"\"{some_quite_long_name}\"\"\"\n",
		"'''module docstring'''\nx = r'raw\\n'\n",
	}
	opts := Options{Quotes: QuoteDouble, Target: Py312, LineWidth: 30}
	for _, src := range sources {
		once := formatSrc(t, src, opts)
		twice := formatSrc(t, once, opts)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce  %q\ntwice %q", src, once, twice)
		}
	}
}

func TestFormatFileImplicitConcatParts(t *testing.T) {
	src := "x = ('first '\n     'second')\n"
	want := "x = (\"first \"\n     \"second\")\n"
	got := formatSrc(t, src, Options{Quotes: QuoteDouble, Target: Py312})
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatFileMixedConcatWarns(t *testing.T) {
	src := "x = b'a' 'b'\n"
	f := fileOf(t, src)
	bag := diag.NewBag(16)
	out := FormatFile(f, Options{Quotes: QuoteDouble, Target: Py312}, &diag.BagReporter{Bag: bag})

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.FmtMixedConcatPrefix {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing mixed-concat diagnostic, got %v", bag.Items())
	}
	// Parts still format individually.
	if string(out) != "x = b\"a\" \"b\"\n" {
		t.Fatalf("got %q", out)
	}
}

func TestLiteralErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code diag.Code
		sev  diag.Severity
	}{
		{"nesting depth", ErrFieldDepth, diag.FmtDepthExceeded, diag.SevError},
		{"token shape", fmt.Errorf("%w: bad string prefix", pyparse.ErrBadToken), diag.FmtUnsupportedLiteral, diag.SevWarning},
		{"body parse failure", errors.New("pyparse: unterminated replacement field"), diag.FmtMalformedFString, diag.SevWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(4)
			reportLiteralError(&diag.BagReporter{Bag: bag}, source.Span{}, tt.err)
			items := bag.Items()
			if len(items) != 1 {
				t.Fatalf("diagnostics = %d, want 1", len(items))
			}
			if items[0].Code != tt.code || items[0].Severity != tt.sev {
				t.Fatalf("got %s/%s, want %s/%s",
					items[0].Code, items[0].Severity, tt.code, tt.sev)
			}
		})
	}
}

func TestGroupWrapPolicies(t *testing.T) {
	tests := []struct {
		src  string
		want WrapPolicy
	}{
		{"x = 'a' 'b'\n", WrapMultiline},
		{"x = '''a\nb'''\n", WrapNever},
		{"x = 'ab'\n", WrapBestFit},
		{"x = f'{v}'\n", WrapBestFit},
	}
	for _, tc := range tests {
		f := fileOf(t, tc.src)
		toks := lexer.Tokenize(f, lexer.Options{Reporter: diag.NopReporter{}})
		var run []token.Token
		for _, tk := range toks {
			if tk.Kind == token.String {
				run = append(run, tk)
			}
		}
		got, err := GroupPolicy(f, run)
		if err != nil {
			t.Fatalf("GroupPolicy(%q): %v", tc.src, err)
		}
		if got != tc.want {
			t.Errorf("GroupPolicy(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestFormatPartStandalone(t *testing.T) {
	f := fileOf(t, "x = F'ok'\n")
	toks := lexer.Tokenize(f, lexer.Options{Reporter: diag.NopReporter{}})
	for _, tk := range toks {
		if tk.Kind != token.String {
			continue
		}
		part, err := pyparse.ParsePart(f, tk.Span, pyparse.Options{})
		if err != nil {
			t.Fatal(err)
		}
		got, err := FormatPart(f, part, Options{Quotes: QuoteDouble, Target: Py312})
		if err != nil {
			t.Fatal(err)
		}
		if got != "f\"ok\"" {
			t.Fatalf("got %q", got)
		}
		return
	}
	t.Fatal("no string token")
}
