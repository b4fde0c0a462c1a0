// Package fuzztests houses Go fuzz harnesses that exercise the
// formatting pipeline (source -> lexer -> string parser -> printer).
// Its goal is to smoke test robustness: no panics on arbitrary input,
// and formatted output that is stable under a second pass.
package fuzztests
