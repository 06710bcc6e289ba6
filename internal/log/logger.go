// Package log provides simple leveled logging with colored output.
//
// All logging goes through package-level functions. Debug messages are
// only emitted after SetVerbose(true); errors always go to stderr.
package log

import (
	"fmt"
	"io"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	verbose     = false
	forceStdErr = false

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	levelPrefixes = map[Level]string{
		LevelDebug: "\033[37m[DBG]\033[0m", // White
		LevelInfo:  "\033[36m[INF]\033[0m", // Cyan
		LevelWarn:  "\033[33m[WRN]\033[0m", // Yellow
		LevelError: "\033[31m[ERR]\033[0m", // Red
	}
)

// SetVerbose sets the logging verbosity. If true, debug messages are displayed.
func SetVerbose(v bool) {
	verbose = v
}

// SetForceStdErr redirects all log output to stderr. Used when the generated
// script itself is printed to stdout, so logs do not corrupt the output.
func SetForceStdErr(force bool) {
	forceStdErr = force
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	if verbose {
		logMessage(LevelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(LevelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(LevelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(LevelError, format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logMessage(LevelError, format, args...)
	os.Exit(1)
}

func logMessage(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	output := levelPrefixes[level] + " " + message + "\n"

	if forceStdErr || level == LevelError {
		_, _ = io.WriteString(stderr, output)
	} else {
		_, _ = io.WriteString(stdout, output)
	}
}
