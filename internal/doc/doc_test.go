package doc

import (
	"strings"
	"testing"
)

func TestPrint_FlatGroup(t *testing.T) {
	d := Group(Text("{"), SoftlineOrSpace(), Text("value"), SoftlineOrSpace(), Text("}"))
	got := Print(d, PrintOptions{Width: 40})
	if got != "{ value }" {
		t.Fatalf("got %q", got)
	}
}

func TestPrint_GroupBreaksWhenTooWide(t *testing.T) {
	d := Group(Text("aaaa"), SoftlineOrSpace(), Text("bbbb"))
	got := Print(d, PrintOptions{Width: 6})
	if got != "aaaa\nbbbb" {
		t.Fatalf("got %q", got)
	}
}

func TestPrint_StartColumnCounts(t *testing.T) {
	d := Group(Text("aaaa"), SoftlineOrSpace(), Text("bbbb"))
	if got := Print(d, PrintOptions{Width: 12}); got != "aaaa bbbb" {
		t.Fatalf("flat: got %q", got)
	}
	if got := Print(d, PrintOptions{Width: 12, StartColumn: 8}); !strings.Contains(got, "\n") {
		t.Fatalf("start column ignored: got %q", got)
	}
}

func TestPrint_BracketedMultiline(t *testing.T) {
	content := Concat(Text("some_long_expression + another_long_expression"))
	d := Bracketed("{", content, "}", true)

	flat := Print(d, PrintOptions{Width: 80})
	if flat != "{some_long_expression + another_long_expression}" {
		t.Fatalf("flat: got %q", flat)
	}

	broken := Print(d, PrintOptions{Width: 30, IndentWidth: 4})
	want := "{\n    some_long_expression + another_long_expression\n}"
	if broken != want {
		t.Fatalf("broken:\ngot  %q\nwant %q", broken, want)
	}
}

func TestPrint_BracketedFlatOnlyNeverBreaks(t *testing.T) {
	content := Concat(Text("some_long_expression + another_long_expression"))
	d := Bracketed("{", content, "}", false)
	got := Print(d, PrintOptions{Width: 10})
	if strings.Contains(got, "\n") {
		t.Fatalf("flat-only bracket broke: %q", got)
	}
}

func TestPrint_HardLineForcesBreak(t *testing.T) {
	d := Group(Text("a"), HardLine(), Text("b"))
	if got := Print(d, PrintOptions{Width: 80}); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
}

func TestPrint_IndentAppliesOnBreak(t *testing.T) {
	d := Group(Text("head"), Indent(SoftlineOrSpace(), Text("body")))
	got := Print(d, PrintOptions{Width: 5, IndentWidth: 2})
	if got != "head\n  body" {
		t.Fatalf("got %q", got)
	}
}

func TestPrint_TextWithNewlineResetsColumn(t *testing.T) {
	d := Concat(Text("line one\nxx"), Group(Text("a"), SoftlineOrSpace(), Text("b")))
	got := Print(d, PrintOptions{Width: 10})
	if got != "line one\nxxa b" {
		t.Fatalf("got %q", got)
	}
}

func TestPrint_WideRunesCount(t *testing.T) {
	// CJK characters occupy two columns each.
	d := Group(Text("宽宽宽"), SoftlineOrSpace(), Text("bb"))
	if got := Print(d, PrintOptions{Width: 8}); got != "宽宽宽\nbb" {
		t.Fatalf("got %q", got)
	}
	if got := Print(d, PrintOptions{Width: 9}); got != "宽宽宽 bb" {
		t.Fatalf("got %q", got)
	}
}
