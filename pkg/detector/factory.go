package detector

import (
	"os"

	"focuslog/pkg/integrations/hybrid"
	"focuslog/pkg/window"
)

// New returns a detector chain for the current platform
func New() (window.Detector, error) {
	det, err := hybrid.NewDetector(candidates()...)
	if err != nil {
		return nil, err
	}
	return det, nil
}

// DetectDisplayServer classifies the session from its environment.
// An explicit XDG_SESSION_TYPE beats the display sockets it would otherwise infer from.
func DetectDisplayServer() string {
	switch os.Getenv("XDG_SESSION_TYPE") {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	switch {
	case os.Getenv("WAYLAND_DISPLAY") != "":
		return "wayland"
	case os.Getenv("DISPLAY") != "":
		return "x11"
	default:
		return "unknown"
	}
}
