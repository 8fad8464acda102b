//go:build windows

package daemon

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestStopRemovesPIDFile(t *testing.T) {
	cmd := exec.Command("ping", "-n", "30", "127.0.0.1")
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
	cmd.Wait()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("PID file still present after Stop: %v", err)
	}
}
