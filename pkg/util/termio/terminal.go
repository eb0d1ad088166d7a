package termio

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal checks whether a given file (e.g. os.Stdout) is attached to a
// terminal, and hence whether escape codes are likely to be interpreted.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
