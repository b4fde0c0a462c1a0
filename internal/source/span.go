package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32 // inclusive, in bytes
	End   uint32 // exclusive, in bytes
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether the byte offset lies inside s.
func (s Span) ContainsOffset(off uint32) bool {
	return s.Start <= off && off < s.End
}

// Intersects reports whether the two spans share at least one byte.
func (s Span) Intersects(other Span) bool {
	return s.File == other.File && s.Start < other.End && other.Start < s.End
}

// Cover extends s to enclose other. Spans from different files are not
// comparable; Cover returns s unchanged in that case.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Shrink narrows the span by n bytes on both sides.
func (s Span) Shrink(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End - n,
	}
}
