//go:build windows

package app

import "os"

// shutdownSignals end the session cleanly.
var shutdownSignals = []os.Signal{os.Interrupt}
