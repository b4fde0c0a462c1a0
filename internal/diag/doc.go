// Package diag defines the diagnostic model shared by the tokenizer and the
// string formatter.
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer and the per-literal formatting passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or rendering.
//
// Package diag performs no formatting, IO, or CLI integration; rendering lives
// in the CLI layer. Diagnostics describe recoverable conditions only: a
// malformed literal degrades to opaque treatment, a too-deep f-string fails
// that single literal. Violations of internal invariants are programming
// errors and panic instead of producing a Diagnostic.
package diag
