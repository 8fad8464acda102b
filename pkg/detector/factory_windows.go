//go:build windows

package detector

import (
	"focuslog/pkg/integrations/win32"
	"focuslog/pkg/window"
)

func candidates() []window.Detector {
	return []window.Detector{win32.NewDetector()}
}
