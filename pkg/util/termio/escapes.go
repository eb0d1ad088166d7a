package termio

import (
	"fmt"
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// TERM_BLUE represents blue
const TERM_BLUE = uint(4)

// AnsiEscape represents an ANSI "select graphic rendition" escape code used for
// formatting text in a terminal.  An escape consists of zero or more
// parameters, such as a foreground colour or boldness.
type AnsiEscape struct {
	params []string
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// Bold adds boldness to this escape.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with("1")
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return p.with(fmt.Sprintf("%d", 30+col))
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("\033[%sm", strings.Join(p.params, ";"))
}

// Apply this escape to a given piece of text, resetting all formatting
// afterwards.
func (p AnsiEscape) Apply(text string) string {
	return fmt.Sprintf("%s%s\033[0m", p.Build(), text)
}

func (p AnsiEscape) with(param string) AnsiEscape {
	var params = make([]string, len(p.params), len(p.params)+1)
	//
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
