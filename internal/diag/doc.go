// Package diag defines the diagnostic model shared by the pipeline phases.
//
// Phases report failures as typed Go errors; FromError turns any of them
// into a Diagnostic with a stable code and a primary span. Rendering lives in
// internal/diagfmt.
//
// Codes are grouped by phase:
//
//	LEX1xxx  lexical errors
//	SYN2xxx  syntax errors
//	RUN3xxx  runtime errors
//	IO4xxx   file access
//	PRJ5xxx  project manifest
package diag
