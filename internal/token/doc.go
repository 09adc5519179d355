// Package token defines lexical token kinds for wisp sources.
// Invariants:
//   - Token.Text is copied from the original source bytes, never synthesized.
//   - Token.Span covers the complete lexeme; for StringLit that includes both
//     quotes while Text carries only the contents between them.
//   - Token.Pos counts code points, not bytes, and names the token's defining
//     character: the paren, the opening quote, or the first identifier rune.
package token
