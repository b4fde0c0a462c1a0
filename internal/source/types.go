package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were normalized on load.
	FileNormalizedCRLF
	// FileTranscoded indicates the file declared a PEP 263 coding cookie and
	// was transcoded to UTF-8 on load.
	FileTranscoded
)

// File captures metadata and content for a single source file.
// Content is always UTF-8 with \n line endings once loaded.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32
	Hash     [32]byte
	Flags    FileFlags
	Encoding string // declared PEP 263 encoding, "" if none
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineCol resolves a byte offset inside the file to a line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Slice returns the source bytes covered by the span.
// The span must belong to this file.
func (f *File) Slice(sp Span) []byte {
	if sp.File != f.ID {
		panic("source: span belongs to a different file")
	}
	return f.Content[sp.Start:sp.End]
}

// Text returns the source text covered by the span as a string.
func (f *File) Text(sp Span) string {
	return string(f.Slice(sp))
}
