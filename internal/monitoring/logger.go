package monitoring

import "log"

// Logf is the package-level diagnostic logger for non-fatal conditions
// such as bias-send failures and poll errors. It defaults to log.Printf;
// tests or embedding code can redirect or mute it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
