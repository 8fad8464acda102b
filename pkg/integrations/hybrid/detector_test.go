package hybrid

import (
	"errors"
	"strings"
	"testing"
	"time"

	"focuslog/pkg/window"
)

type stubDetector struct {
	name      string
	available bool
	info      *window.WindowInfo
	err       error
	closed    bool
}

func (s *stubDetector) GetFocusedWindow() (*window.WindowInfo, error) { return s.info, s.err }
func (s *stubDetector) IsAvailable() bool                             { return s.available }
func (s *stubDetector) GetDisplayServer() string                      { return s.name }
func (s *stubDetector) Close() error                                  { s.closed = true; return nil }

func TestNewDetectorSkipsUnavailable(t *testing.T) {
	missing := &stubDetector{name: "wayland"}
	x11 := &stubDetector{name: "x11", available: true}

	d, err := NewDetector(missing, nil, x11)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	if len(d.detectors) != 1 {
		t.Fatalf("kept %d detectors, want 1", len(d.detectors))
	}
	if len(d.pending) != 1 || d.pending[0] != missing {
		t.Errorf("unavailable detector not kept for recheck: %v", d.pending)
	}
	if d.GetDisplayServer() != "x11" {
		t.Errorf("GetDisplayServer() = %s, want x11", d.GetDisplayServer())
	}
	if !strings.Contains(d.GetStatus(), "wayland (unavailable)") {
		t.Errorf("GetStatus() missing pending detector:\n%s", d.GetStatus())
	}
}

func TestPendingDetectorIsRechecked(t *testing.T) {
	x11 := &stubDetector{name: "x11", available: true, err: errors.New("no active window")}
	wayland := &stubDetector{
		name: "wayland",
		info: &window.WindowInfo{ProcessName: "foot", WindowTitle: "~"},
	}

	d, err := NewDetector(wayland, x11)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}
	clock := d.lastRecheck
	d.now = func() time.Time { return clock }

	wayland.available = true
	if _, err := d.GetFocusedWindow(); err == nil {
		t.Fatal("pending detector queried before the recheck interval elapsed")
	}

	clock = clock.Add(RecheckInterval)
	info, err := d.GetFocusedWindow()
	if err != nil {
		t.Fatalf("GetFocusedWindow() error after recheck: %v", err)
	}
	if info.ProcessName != "foot" {
		t.Errorf("ProcessName = %s, want foot", info.ProcessName)
	}
	if len(d.pending) != 0 || len(d.detectors) != 2 {
		t.Errorf("detectors = %d, pending = %d, want 2 and 0", len(d.detectors), len(d.pending))
	}
}

func TestNewDetectorNoneAvailable(t *testing.T) {
	missing := &stubDetector{name: "x11"}
	if _, err := NewDetector(missing); err == nil {
		t.Error("expected error when no detector is available")
	}
	if !missing.closed {
		t.Error("unavailable detector was not closed")
	}
}

func TestGetFocusedWindowFallsThrough(t *testing.T) {
	first := &stubDetector{name: "wayland", available: true, err: errors.New("compositor gone")}
	second := &stubDetector{
		name:      "x11",
		available: true,
		info:      &window.WindowInfo{ProcessName: "kitty", WindowTitle: "shell"},
	}

	d, err := NewDetector(first, second)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	info, err := d.GetFocusedWindow()
	if err != nil {
		t.Fatalf("GetFocusedWindow() error: %v", err)
	}
	if info.ProcessName != "kitty" {
		t.Errorf("ProcessName = %s, want kitty", info.ProcessName)
	}
	if d.GetDisplayServer() != "x11" {
		t.Errorf("GetDisplayServer() = %s, want x11", d.GetDisplayServer())
	}
	if !strings.Contains(d.GetStatus(), "Last successful method: x11") {
		t.Errorf("GetStatus() missing last method:\n%s", d.GetStatus())
	}
}

func TestGetFocusedWindowAllFail(t *testing.T) {
	d, err := NewDetector(
		&stubDetector{name: "wayland", available: true, err: errors.New("boom")},
		&stubDetector{name: "x11", available: true},
	)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}

	_, err = d.GetFocusedWindow()
	if err == nil {
		t.Fatal("expected error when every detector fails")
	}
	if !strings.Contains(err.Error(), "wayland: boom") || !strings.Contains(err.Error(), "x11: no window information") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClose(t *testing.T) {
	a := &stubDetector{name: "a", available: true}
	b := &stubDetector{name: "b", available: true}

	d, err := NewDetector(a, b)
	if err != nil {
		t.Fatalf("NewDetector() error: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("Close() did not close every detector")
	}
}

func TestDetectorInterface(t *testing.T) {
	var _ window.Detector = (*Detector)(nil)
}
