// Package token defines the lexical token model for Python source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comment and NonLogicalNewline are the only trivia kinds; they appear in
//     the raw stream and are filtered before structural consumers see it.
//   - String covers every string-like literal (plain, bytes, raw, f-string,
//     any prefix casing); the literal's interior is not tokenized here.
package token
