package render

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// TerminalSize returns the dimensions of the terminal attached to f.
func TerminalSize(f *os.File) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlGetTermios)
	return err == nil
}

// WrapWidth resolves a configured width: positive values are used as is,
// negative values mean the width of the terminal on f (or no wrapping when
// f is not a terminal), and zero disables wrapping.
func WrapWidth(configured int, f *os.File) int {
	if configured >= 0 {
		return configured
	}
	if w, _, err := TerminalSize(f); err == nil && w > 0 {
		return w
	}
	return 0
}
