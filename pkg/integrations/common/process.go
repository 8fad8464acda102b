package common

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/process"
)

// ProcessName resolves the executable name of a running process
func ProcessName(pid int) (string, error) {
	if pid <= 0 {
		return "", fmt.Errorf("invalid pid %d", pid)
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	name, err := proc.Name()
	if err != nil {
		return "", fmt.Errorf("failed to read name of process %d: %w", pid, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("process %d has no name", pid)
	}

	return name, nil
}
