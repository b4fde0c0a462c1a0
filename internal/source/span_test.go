package source

import (
	"testing"
)

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name  string
		outer Span
		inner Span
		want  bool
	}{
		{"identical", Span{File: 0, Start: 3, End: 9}, Span{File: 0, Start: 3, End: 9}, true},
		{"strictly inside", Span{File: 0, Start: 3, End: 9}, Span{File: 0, Start: 4, End: 8}, true},
		{"overlaps left", Span{File: 0, Start: 3, End: 9}, Span{File: 0, Start: 2, End: 5}, false},
		{"overlaps right", Span{File: 0, Start: 3, End: 9}, Span{File: 0, Start: 8, End: 10}, false},
		{"different file", Span{File: 0, Start: 3, End: 9}, Span{File: 1, Start: 4, End: 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outer.Contains(tt.inner); got != tt.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tt.outer, tt.inner, got, tt.want)
			}
		})
	}
}

func TestSpan_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 3}, Span{Start: 3, End: 6}, false},
		{"touching byte", Span{Start: 0, End: 4}, Span{Start: 3, End: 6}, true},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 4, End: 5}, true},
		{"different file", Span{File: 0, Start: 0, End: 10}, Span{File: 2, Start: 4, End: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Fatalf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Fatalf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFile_LineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lc.py", []byte("ab\ncd\n\nxyz"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
		{9, LineCol{Line: 4, Col: 3}},
	}
	for _, tt := range tests {
		if got := f.LineCol(tt.off); got != tt.want {
			t.Errorf("LineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}
