// Package logger prefixes host tool output and honours a quiet flag.
package logger

import "log"

// Quiet suppresses Info output; Error is always printed.
var Quiet bool

// Info logs an informational message unless Quiet is set.
func Info(format string, args ...interface{}) {
	if Quiet {
		return
	}
	log.Printf("tickgen: "+format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	log.Printf("tickgen: "+format, args...)
}
