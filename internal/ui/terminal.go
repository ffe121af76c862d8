package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const defaultWidth = 80

// IsInteractive reports whether f is a terminal a live view can draw on
func IsInteractive(f *os.File) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the width of f, or 80 when it is not a terminal
func TerminalWidth(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// truncatePath keeps the end of a path that does not fit in maxLen
func truncatePath(path string, maxLen int) string {
	if maxLen <= 3 || len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
