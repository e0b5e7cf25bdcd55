package log

import (
	"io"
	"log"
	"os"
)

var (
	// Trace logs verbose diagnostics, discarded unless InitLog enables it.
	Trace *log.Logger
	// Info logs user-relevant progress messages.
	Info *log.Logger
	// Error logs failures.
	Error *log.Logger
)

func init() {
	InitLog(false)
}

// InitLog wires the package loggers. With verbose set, Trace output goes to
// stderr, otherwise it is discarded.
func InitLog(verbose bool) {
	var traceOut io.Writer = io.Discard
	if verbose {
		traceOut = os.Stderr
	}

	Trace = log.New(traceOut, "TRACE: ", log.Lshortfile)
	Info = log.New(os.Stderr, "", 0)
	Error = log.New(os.Stderr, "ERROR: ", 0)
}
