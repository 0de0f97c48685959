package layout

import (
	"os"

	"golang.org/x/sys/unix"
)

// TerminalWidth returns the column count of the terminal attached to
// stdout, or fallback when stdout is not a terminal (e.g. piped output).
func TerminalWidth(fallback int) int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return fallback
	}
	return int(ws.Col)
}
