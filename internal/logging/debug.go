package logging

import (
	"fmt"
	"os"
)

// DebugEnv enables debug output when set to any non-empty value
const DebugEnv = "TASKS_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TASKS_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf prints a formatted debug message to stderr only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
