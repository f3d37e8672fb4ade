// 14 Oct 2026

package common

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	warnClr  = color.New(color.FgYellow)
	fatalClr = color.New(color.FgRed, color.Bold)
)

// Stderr is where messages go. Tests point it somewhere else.
var Stderr io.Writer = os.Stderr

// color decides from stdout, but our messages go to stderr.
func init() { color.NoColor = noColour(os.Stderr) }

// noColour is true if f is not a terminal, or the environment asks
// for no colour.
func noColour(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Warn prints a warning. There is no colour if stderr is not a
// terminal.
func Warn(format string, a ...any) {
	warnClr.Fprintf(Stderr, "Warning, "+format+"\n", a...)
}

// Fatal prints the message that goes with a non-zero exit.
func Fatal(err error) {
	fatalClr.Fprintln(Stderr, "Fatal:", err)
}

// Say prints if the verbosity is at least lvl.
func Say(vbsty, lvl int, a ...any) {
	if vbsty < lvl {
		return
	}
	fmt.Fprintln(Stderr, a...)
}

// WarnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func WarnExists(fname string) {
	if fname == "" || fname == "-" {
		return
	}
	if _, err := os.Stat(fname); err == nil {
		Warn("trashing old version of %s", fname)
	}
}
