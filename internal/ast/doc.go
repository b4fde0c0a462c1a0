// Package ast models Python string-like literals for formatting.
//
// The nodes are read-only views over one (source text, token stream) pair:
// every node carries the span of the source it covers, and no node owns text
// beyond what DebugText must capture verbatim. A StringGroup is one logical
// string value; its parts are the adjacent literals of an implicit
// concatenation (a single literal is a group of one part). F-string bodies
// are ordered Element sequences; format specs recurse into the same Element
// type.
package ast
