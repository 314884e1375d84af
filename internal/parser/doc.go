// Package parser builds the ember syntax tree from a token list.
//
// The grammar is a composition of comb parsers:
//
//	program    = stmt* EOF
//	stmt       = if | call ";" | assignment ";"
//	if         = "if" "(" expr ")" block [ "else" block ]
//	block      = "{" stmt* "}"
//	assignment = name "=" expr
//	expr       = logical
//	logical    = equality   (("&&" | "||") equality)*
//	equality   = relational (("==" | "!=") relational)*
//	relational = additive   (("<" | ">" | "<=" | ">=") additive)*
//	additive   = mul        (("+" | "-") mul)*
//	mul        = unary      (("*" | "/") unary)*
//	unary      = ["-" | "+" | "!"] primary
//	primary    = "(" expr ")" | call | number | string | name
//	call       = name "(" [expr ("," expr)*] ")"
//
// The ";" after a call or an assignment may be left out right before "}"
// and at the end of input. There is no error recovery: the first failure
// aborts the parse with a *SyntaxError.
package parser
