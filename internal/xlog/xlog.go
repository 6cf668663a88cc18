// Package xlog is the minimal leveled logger exprlang calls the way graft's
// pkg/graft/init.go calls its own DEBUG/TRACE pair. graft forwards to an
// internal log package that was not part of the retrieval pack, so this is a
// direct stand-in at the same call-site granularity.
package xlog

import (
	"fmt"
	"os"
)

var (
	debugEnabled = os.Getenv("EXPRLANG_DEBUG") != ""
	traceEnabled = os.Getenv("EXPRLANG_TRACE") != ""
)

// Debugf writes a debug line to stderr when EXPRLANG_DEBUG is set.
func Debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
}

// Tracef writes a trace line to stderr when EXPRLANG_TRACE is set.
func Tracef(format string, args ...interface{}) {
	if !traceEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, "TRACE: "+format+"\n", args...)
}
