// Package interp executes ember programs by walking the syntax tree.
//
// All state lives in a *Machine passed explicitly to Run: a variable store
// and a table of host functions. Independent machines can run concurrently;
// one machine must not be shared by concurrent runs.
package interp
