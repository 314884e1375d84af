// Package ast defines the syntax tree produced by the parser.
//
// The tree is a closed variant: Stmt is implemented by Assignment,
// FunctionCall and If; Expr by FunctionCall, Unary, Binary, NumberLiteral,
// StringLiteral and VariableRef. Both interfaces carry an unexported marker
// method, so no other package can add cases. Kind() mirrors the concrete type
// as an enum for switch statements checked by the exhaustive linter.
//
// Nodes own their children exclusively; the tree has no sharing and no cycles.
package ast
