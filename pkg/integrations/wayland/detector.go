package wayland

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"focuslog/pkg/integrations/common"
	"focuslog/pkg/window"
)

// Detector implements window.Detector for wlroots-style Wayland compositors
type Detector struct {
	compositor string
	hasSwaymsg bool
	hasHyprctl bool

	// run executes a compositor IPC command, replaced in tests
	run func(name string, args ...string) ([]byte, error)
	// processName resolves a PID, replaced in tests
	processName func(pid int) (string, error)
}

// NewDetector creates a new Wayland detector
func NewDetector() *Detector {
	d := &Detector{
		run:         runCommand,
		processName: common.ProcessName,
	}
	d.hasSwaymsg = commandExists("swaymsg")
	d.hasHyprctl = commandExists("hyprctl")
	d.compositor = detectCompositor()
	return d
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// detectCompositor identifies the compositor from the IPC variables it exports
func detectCompositor() string {
	switch {
	case os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		return "hyprland"
	case os.Getenv("SWAYSOCK") != "":
		return "sway"
	default:
		return "unknown"
	}
}

// IsAvailable checks if Wayland detection is available
func (d *Detector) IsAvailable() bool {
	switch d.compositor {
	case "sway":
		return d.hasSwaymsg
	case "hyprland":
		return d.hasHyprctl
	default:
		return false
	}
}

// GetDisplayServer returns "wayland"
func (d *Detector) GetDisplayServer() string {
	return "wayland"
}

// GetFocusedWindow returns information about the currently focused window
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	switch d.compositor {
	case "sway":
		return d.getFocusedWindowSway()
	case "hyprland":
		return d.getFocusedWindowHyprland()
	default:
		return nil, fmt.Errorf("unsupported wayland compositor: %s", d.compositor)
	}
}

type swayWindowProperties struct {
	Class string `json:"class"`
}

type swayNode struct {
	Focused          bool                  `json:"focused"`
	Name             *string               `json:"name"`
	AppID            *string               `json:"app_id"`
	PID              int                   `json:"pid"`
	Type             string                `json:"type"`
	WindowProperties *swayWindowProperties `json:"window_properties"`
	Nodes            []swayNode            `json:"nodes"`
	FloatingNodes    []swayNode            `json:"floating_nodes"`
}

// getFocusedWindowSway gets focused window info from Sway
func (d *Detector) getFocusedWindowSway() (*window.WindowInfo, error) {
	output, err := d.run("swaymsg", "-t", "get_tree")
	if err != nil {
		return nil, fmt.Errorf("failed to execute swaymsg: %w", err)
	}

	var tree swayNode
	if err := json.Unmarshal(output, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse sway tree: %w", err)
	}

	node := findFocused(&tree)
	if node == nil || (node.PID == 0 && node.AppID == nil && node.WindowProperties == nil) {
		return nil, fmt.Errorf("no focused sway window")
	}

	appID := ""
	switch {
	case node.AppID != nil:
		appID = *node.AppID
	case node.WindowProperties != nil:
		appID = node.WindowProperties.Class
	}

	title := ""
	if node.Name != nil {
		title = *node.Name
	}

	return d.windowInfo(node.PID, appID, title)
}

// findFocused walks the sway tree depth-first for the focused leaf
func findFocused(node *swayNode) *swayNode {
	if node.Focused {
		return node
	}
	for i := range node.Nodes {
		if found := findFocused(&node.Nodes[i]); found != nil {
			return found
		}
	}
	for i := range node.FloatingNodes {
		if found := findFocused(&node.FloatingNodes[i]); found != nil {
			return found
		}
	}
	return nil
}

type hyprlandWindow struct {
	Class string `json:"class"`
	Title string `json:"title"`
	PID   int    `json:"pid"`
}

// getFocusedWindowHyprland gets focused window info from Hyprland
func (d *Detector) getFocusedWindowHyprland() (*window.WindowInfo, error) {
	output, err := d.run("hyprctl", "activewindow", "-j")
	if err != nil {
		return nil, fmt.Errorf("failed to execute hyprctl: %w", err)
	}

	var active hyprlandWindow
	if err := json.Unmarshal(output, &active); err != nil {
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}
	if active.PID <= 0 && active.Class == "" {
		return nil, fmt.Errorf("no focused hyprland window")
	}

	return d.windowInfo(active.PID, active.Class, active.Title)
}

func (d *Detector) windowInfo(pid int, appID, title string) (*window.WindowInfo, error) {
	processName := ""
	if pid > 0 {
		if name, err := d.processName(pid); err == nil {
			processName = name
		}
	}
	if processName == "" {
		processName = appID
	}
	if processName == "" {
		return nil, fmt.Errorf("could not identify owner of focused window")
	}

	return &window.WindowInfo{
		ProcessName:   processName,
		WindowTitle:   title,
		PID:           pid,
		DisplayServer: "wayland",
	}, nil
}

// Close cleans up resources
func (d *Detector) Close() error {
	return nil
}
