// Package driver wires the pipeline together: it loads a file, lexes it
// (optionally through the on-disk token cache), parses it and runs it on a
// fresh machine, turning every failure into diagnostics. RunDir does the
// same for a directory of scripts in parallel.
package driver
