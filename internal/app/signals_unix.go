//go:build !windows

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

// shutdownSignals end the session cleanly.
var shutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}
