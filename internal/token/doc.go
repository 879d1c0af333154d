// Package token defines lexical token kinds and trivia for Lua source.
// Invariants:
//   - Token.Text is the exact source spelling of the token.
//   - Trivia (whitespace and comments) is attached to tokens in two ordered
//     runs: Leading before the token, Trailing after it up to and including
//     the first newline.
//   - Tokens are values; the with-trivia constructors return new tokens and
//     never mutate the receiver, so tokens may be shared between trees.
package token
