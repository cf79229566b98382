// Package term reports whether a file descriptor is attached to a terminal.
package term

import (
	"os"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}
