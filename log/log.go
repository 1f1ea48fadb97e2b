package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	majorPrefix = ""
	minorPrefix = "  "
	debugPrefix = "   Dbg:"

	out   io.Writer
	level logLevel
)

func init() {
	out = os.Stdout
}

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// SetOut redirects all logging to the supplied io.Writer. The default is os.Stdout. The
// supplied io.Writer must never be nil.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	out = w
}

// Out returns the current io.Writer for output which has to bypass level filtering,
// such as usage and fatal messages. The return value is never nil.
func Out() io.Writer {
	return out
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	level = l
}

// Level returns the current logging level.
func Level() logLevel {
	return level
}

// IfMajor returns true if Major logging is written to the output stream. The If*
// functions exist for callers whose log arguments are expensive to construct.
func IfMajor() bool {
	return level >= MajorLevel
}

func IfMinor() bool {
	return level >= MinorLevel
}

func IfDebug() bool {
	return level >= DebugLevel
}

// Majorf is an approximate fmt.Printf equivalent which only generates output if the
// level is >= Major. A newline is always appended so the caller should not supply
// one. Each line of multi-line output carries the level prefix.
func Majorf(format string, a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return prefixLines(fmt.Sprintf(format, a...), majorPrefix)
	}

	return 0, nil
}

// Major is the fmt.Print flavor of Majorf.
func Major(a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		return prefixLines(fmt.Sprint(a...), majorPrefix)
	}

	return 0, nil
}

// Minorf only generates output if the level is >= Minor.
func Minorf(format string, a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return prefixLines(fmt.Sprintf(format, a...), minorPrefix)
	}

	return 0, nil
}

// Minor is the fmt.Print flavor of Minorf.
func Minor(a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		return prefixLines(fmt.Sprint(a...), minorPrefix)
	}

	return 0, nil
}

// Debugf only generates output if the level is >= Debug.
func Debugf(format string, a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return prefixLines(fmt.Sprintf(format, a...), debugPrefix)
	}

	return 0, nil
}

// Debug is the fmt.Print flavor of Debugf.
func Debug(a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		return prefixLines(fmt.Sprint(a...), debugPrefix)
	}

	return 0, nil
}

// prefixLines is the common output handler. Every line in the supplied string is
// prefixed, trailing empty lines are chomped and a single trailing newline is
// appended so callers never supply one.
func prefixLines(lines, prefix string) (int, error) {
	if strings.Index(lines, "\n") == 0 { // Expect this to be the common case
		return fmt.Fprint(out, prefix, lines, "\n")
	}

	ar := strings.Split(lines, "\n")

	for len(ar) > 0 && len(ar[len(ar)-1]) == 0 {
		ar = ar[:len(ar)-1]
	}

	s := strings.Join(ar, "\n"+prefix)

	return fmt.Fprint(out, prefix, s, "\n")
}
