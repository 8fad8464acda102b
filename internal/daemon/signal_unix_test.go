//go:build !windows

package daemon

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestStopSendsTerm(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start child process: %v", err)
	}

	path := filepath.Join(t.TempDir(), "focuslog.pid")
	if err := os.WriteFile(path, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		t.Fatal(err)
	}

	if err := New(path).Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	// A terminated child reports the signal through Wait
	if err := cmd.Wait(); err == nil {
		t.Error("child exited cleanly, want termination by signal")
	}
	// The journal removes its own PID file on SIGTERM
	if _, err := os.Stat(path); err != nil {
		t.Errorf("PID file removed by Stop: %v", err)
	}
}
