// Package logging wires up the shared leveled logger used across nlcrypt.
//
// It follows the same backend-selection shape as a typical daemon-style
// Go program: a single package-level logger obtained once via
// MustGetLogger, a custom stderr formatter, and a module level that the
// CLI raises when its -d flag is repeated.
package logging

import (
	"os"

	"github.com/op/go-logging"
)

// Log is the shared logger used by every internal package. Tests that
// don't care about trace output are free to ignore it; cmd/nlcrypt
// calls SetDebug when its -d flag is set.
var Log = logging.MustGetLogger("nlcrypt")

var stderrFormat = logging.MustStringFormatter(
	`%{color}nlcrypt ▶ %{level:.4s}%{color:reset} %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, stderrFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveled)
}

// SetDebug raises the module level to DEBUG when count > 0, matching the
// original CLI's "-d" flag (each repetition increments a debug counter;
// any nonzero value turns all trace output on).
func SetDebug(count int) {
	if count > 0 {
		logging.SetLevel(logging.DEBUG, "")
	}
}
