package window

// WindowInfo represents information about the currently focused window
type WindowInfo struct {
	ProcessName   string
	WindowTitle   string
	PID           int
	DisplayServer string // "x11", "wayland" or "windows"
}

// Detector is the interface that all window detection implementations must satisfy
type Detector interface {
	// GetFocusedWindow returns information about the currently focused window
	GetFocusedWindow() (*WindowInfo, error)

	// IsAvailable checks if this detector can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the display server type
	GetDisplayServer() string

	// Close cleans up any resources used by the detector
	Close() error
}

// FocusSample is one poll of the focused window. A nil field means the
// identity could not be determined.
type FocusSample struct {
	ProcessName *string
	WindowTitle *string
}

// UnknownSample returns the sample used whenever the focus query fails.
func UnknownSample() FocusSample {
	return FocusSample{}
}

// SampleOf converts detector output into a sample.
func SampleOf(info *WindowInfo) FocusSample {
	if info == nil {
		return UnknownSample()
	}
	name, title := info.ProcessName, info.WindowTitle
	return FocusSample{ProcessName: &name, WindowTitle: &title}
}

// IsUnknown reports whether the sample carries no identity.
func (s FocusSample) IsUnknown() bool {
	return s.ProcessName == nil
}

// SameProcess compares process names by value; two unknown samples are equal.
func (s FocusSample) SameProcess(name *string) bool {
	return EqualNames(s.ProcessName, name)
}

// EqualNames is value equality over optional process names.
func EqualNames(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// String renders a pointer field for log output.
func String(s *string) string {
	if s == nil {
		return "<unknown>"
	}
	return *s
}
