// Package diag builds the zap loggers used by stargaze and reads their
// output back for the in-app diagnostics overlay.
//
// # Loggers
//
// NewFileLogger is used by the TUI, which cannot write to the terminal it
// is drawing on. NewConsoleLogger is used by stargaze-proxy. Both use the
// console encoder with tab-separated columns:
//
//	2024-03-10 15:04:05	ERROR	ui/effects.go:42	fetch range failed	{"error": "..."}
//
// # Tail
//
// Tail reads the last N lines in one pass with a ring buffer, so memory is
// bounded by N regardless of file size. ParseLine splits a line back into
// its columns for colouring.
package diag
