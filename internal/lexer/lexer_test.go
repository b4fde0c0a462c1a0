package lexer

import (
	"testing"

	"pystrfmt/internal/diag"
	"pystrfmt/internal/source"
	"pystrfmt/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lex.py", []byte(src))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("diag: %s %s", d.Code, d.Message)
		}
		t.Fatalf("unexpected lex errors for %q", src)
	}
	return toks
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func eqKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexer_Statements(t *testing.T) {
	toks := lexAll(t, "x = 5\ny = 10\n")
	want := []token.Kind{
		token.Name, token.Op, token.Number, token.Newline,
		token.Name, token.Op, token.Number, token.Newline,
		token.EOF,
	}
	if !eqKinds(kindsOf(toks), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(toks), want)
	}
}

func TestLexer_CommentAndBlankLines(t *testing.T) {
	toks := lexAll(t, "# header\n\nx = 1  # trailing\n")
	want := []token.Kind{
		token.Comment, token.NonLogicalNewline,
		token.NonLogicalNewline,
		token.Name, token.Op, token.Number, token.Comment, token.Newline,
		token.EOF,
	}
	if !eqKinds(kindsOf(toks), want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(toks), want)
	}
}

func TestLexer_NewlineInsideBracketsIsNonLogical(t *testing.T) {
	toks := lexAll(t, "x = [\n    1,\n]\n")
	var nonLogical, logical int
	for _, tk := range toks {
		switch tk.Kind {
		case token.NonLogicalNewline:
			nonLogical++
		case token.Newline:
			logical++
		}
	}
	if nonLogical != 2 || logical != 1 {
		t.Fatalf("nonLogical=%d logical=%d, want 2/1", nonLogical, logical)
	}
}

func TestLexer_HashInsideStringIsNotComment(t *testing.T) {
	for _, src := range []string{
		"s = \"# not a comment\"\n",
		"s = '# also not'\n",
		"s = \"\"\"multi\n# not a comment\"\"\"\n",
	} {
		for _, tk := range lexAll(t, src) {
			if tk.Kind == token.Comment {
				t.Fatalf("%q: string interior produced a comment token", src)
			}
		}
	}
}

func TestLexer_StringPrefixes(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"s = r'\\d+'\n", "r'\\d+'"},
		{"s = b\"bytes\"\n", "b\"bytes\""},
		{"s = rb'\\x00'\n", "rb'\\x00'"},
		{"s = f\"{x}\"\n", "f\"{x}\""},
		{"s = F'{x}'\n", "F'{x}'"},
		{"s = u'text'\n", "u'text'"},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.src)
		var str *token.Token
		for i := range toks {
			if toks[i].Kind == token.String {
				str = &toks[i]
				break
			}
		}
		if str == nil {
			t.Fatalf("%q: no string token", tt.src)
		}
		if str.Text != tt.text {
			t.Fatalf("%q: string text = %q, want %q", tt.src, str.Text, tt.text)
		}
	}
}

func TestLexer_FStringNestedQuotes(t *testing.T) {
	// Modern grammar: same quote character nested inside a replacement field.
	src := "s = f\"outer {\"inner\"} done\"\n"
	toks := lexAll(t, src)
	var strs []string
	for _, tk := range toks {
		if tk.Kind == token.String {
			strs = append(strs, tk.Text)
		}
	}
	if len(strs) != 1 || strs[0] != "f\"outer {\"inner\"} done\"" {
		t.Fatalf("string tokens = %q", strs)
	}
}

func TestLexer_FStringLiteralBraces(t *testing.T) {
	src := "s = f\"{{literal}} {x}\"\n"
	toks := lexAll(t, src)
	count := 0
	for _, tk := range toks {
		if tk.Kind == token.String {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one string token, got %d", count)
	}
}

func TestLexer_TripleFStringInteriorComment(t *testing.T) {
	src := "s = f\"\"\"head {\n    # inner\n    x\n} tail\"\"\"\n"
	toks := lexAll(t, src)
	var comments []token.Token
	var str *token.Token
	for i := range toks {
		switch toks[i].Kind {
		case token.Comment:
			comments = append(comments, toks[i])
		case token.String:
			str = &toks[i]
		}
	}
	if str == nil {
		t.Fatalf("no string token")
	}
	if len(comments) != 1 {
		t.Fatalf("interior comments = %d, want 1", len(comments))
	}
	if !str.Span.Contains(comments[0].Span) {
		t.Fatalf("comment %v not inside string %v", comments[0].Span, str.Span)
	}
	if comments[0].Text != "# inner" {
		t.Fatalf("comment text = %q", comments[0].Text)
	}
}

func TestLexer_IndentDedent(t *testing.T) {
	toks := lexAll(t, "if x:\n    y = 1\nz = 2\n")
	var indents, dedents int
	for _, tk := range toks {
		switch tk.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Fatalf("indents=%d dedents=%d, want 1/1", indents, dedents)
	}
}

func TestLexer_LineContinuation(t *testing.T) {
	toks := lexAll(t, "x = 1 + \\\n    2\n")
	for _, tk := range toks {
		if tk.Kind == token.NonLogicalNewline {
			t.Fatalf("backslash continuation must not produce a newline token")
		}
	}
}

func TestLexer_UnterminatedStringReports(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.py", []byte("s = 'oops\n"))
	bag := diag.NewBag(16)
	toks := Tokenize(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.Invalid {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Invalid token")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestLexer_SpansMatchText(t *testing.T) {
	src := "value = f'{count:>{width}}'  # aligned\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("spans.py", []byte(src))
	f := fs.Get(id)
	for _, tk := range Tokenize(f, Options{}) {
		if tk.Kind == token.EOF || tk.Kind == token.Indent || tk.Kind == token.Dedent {
			continue
		}
		if got := f.Text(tk.Span); got != tk.Text {
			t.Fatalf("span/text mismatch for %v: span=%q text=%q", tk.Kind, got, tk.Text)
		}
	}
}
