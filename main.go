package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/pregen"
)

// flowlens carries the state of one program invocation.
type flowlens struct {
	cfg       *config
	startTime time.Time
}

func newFlowlens() *flowlens {
	return &flowlens{cfg: newConfig(), startTime: time.Now()}
}

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

func warning(err error, messages ...string) {
	reportError("Warning", err, messages...)
}

//////////////////////////////////////////////////////////////////////

func main() {
	t := newFlowlens()
	switch t.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package. Progress at Major is the
	// default; --log-major=false silences it and the finer flags raise it.
	log.SetLevel(log.SilentLevel)
	if t.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if t.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if t.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	log.Majorf("%s %s starting with log level %s", programName, pregen.Version, log.Level())

	err := t.ValidateCommandLineOptions()
	if err != nil {
		fatal(err)
	}

	err = t.run()
	if err != nil {
		fatal(err)
	}

	log.Majorf("%s %s exiting after %s", programName, pregen.Version,
		time.Since(t.startTime).Round(time.Second))
}
