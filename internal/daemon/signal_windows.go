//go:build windows

package daemon

import (
	"os"

	"golang.org/x/sys/windows"
)

const stillActive = 259

// Kill skips the journal's deferred cleanup, so Stop clears the PID file itself
const graceful = false

func alive(process *os.Process) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(process.Pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code == stillActive
}

// Windows has no SIGTERM for console processes; the journal holds no open files between polls
func terminate(process *os.Process) error {
	return process.Kill()
}
