// Package comb is a small backtracking parser-combinator library over a
// token stream. It knows nothing about the ember grammar.
//
// A Parser[T] returns (value, true) on a match or (zero, false) on no match.
// "No match" is an ordinary outcome, never an error. Every primitive restores
// the cursor to its entry position when it fails, so parsers compose without
// manual lookahead.
//
// Besides positions, the Cursor records the farthest position at which a
// token was expected but not found, together with what was expected there.
// A caller whose top-level parser failed uses Cursor.Failure to build a
// precise syntax error.
package comb
