//go:build !windows

package daemon

import (
	"os"
	"syscall"
)

// SIGTERM lets the journal exit through its own cleanup
const graceful = true

func alive(process *os.Process) bool {
	return process.Signal(syscall.Signal(0)) == nil
}

func terminate(process *os.Process) error {
	return process.Signal(syscall.SIGTERM)
}
