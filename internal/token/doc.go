// Package token defines the chunk kinds, flag set and keyword tables shared by
// every stage of the reformatter.
//
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Leading holds the exact horizontal whitespace before the token, so
//     concatenating Leading+Text over a file reproduces it byte for byte.
//   - Line breaks are tokens (Newline, with a count), never part of Leading.
//   - Kind is a closed enumeration. Stages retag chunks (Word -> Type,
//     Colon -> CaseColon, ParenOpen -> SParenOpen) but never invent kinds.
package token
