//go:build !windows

package detector

import (
	"focuslog/pkg/integrations/wayland"
	"focuslog/pkg/integrations/x11"
	"focuslog/pkg/window"
)

// candidates orders native Wayland ahead of X11 so XWayland is only a fallback
func candidates() []window.Detector {
	if DetectDisplayServer() == "wayland" {
		return []window.Detector{wayland.NewDetector(), x11.NewDetector()}
	}
	return []window.Detector{x11.NewDetector()}
}
