//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"focuslog/pkg/integrations/common"
	"focuslog/pkg/window"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
)

// Detector implements window.Detector on top of the Win32 foreground window API
type Detector struct {
	processName func(pid int) (string, error)
}

// NewDetector creates a new Windows detector
func NewDetector() *Detector {
	return &Detector{processName: common.ProcessName}
}

// IsAvailable checks that user32 exports what we call
func (d *Detector) IsAvailable() bool {
	return procGetWindowTextW.Find() == nil && procGetWindowTextLengthW.Find() == nil
}

// GetDisplayServer returns "windows"
func (d *Detector) GetDisplayServer() string {
	return "windows"
}

// GetFocusedWindow returns information about the foreground window
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return nil, fmt.Errorf("no foreground window")
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return nil, fmt.Errorf("failed to get owner of foreground window: %w", err)
	}
	if pid == 0 {
		return nil, fmt.Errorf("foreground window has no owning process")
	}

	// The process may exit between the handle lookup and this query
	name, err := d.processName(int(pid))
	if err != nil {
		return nil, err
	}

	return &window.WindowInfo{
		ProcessName:   name,
		WindowTitle:   windowText(hwnd),
		PID:           int(pid),
		DisplayServer: "windows",
	}, nil
}

func windowText(hwnd windows.HWND) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

// Close cleans up resources
func (d *Detector) Close() error {
	return nil
}
