// Package logging provides a unified logging interface for the system monitor.
// It abstracts the underlying zerolog implementation, allowing consistent
// logging across components.
//
// The dashboard owns the terminal while it runs, so the default sink for a
// monitoring session is a size-rotated log file. Stderr is only used when it
// is redirected away from the terminal.
package logging
