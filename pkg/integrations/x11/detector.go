package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"golang.org/x/text/encoding/charmap"

	"focuslog/pkg/integrations/common"
	"focuslog/pkg/window"
)

var atomNames = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"WM_NAME",
	"WM_CLASS",
	"UTF8_STRING",
}

// Detector implements window.Detector for X11 using a native X protocol connection
type Detector struct {
	display string
	conn    *xgb.Conn
	root    xproto.Window
	atoms   map[string]xproto.Atom

	// processName resolves a PID, replaced in tests
	processName func(pid int) (string, error)
}

// NewDetector creates a new X11 detector. The connection is opened lazily.
func NewDetector() *Detector {
	return &Detector{
		display:     os.Getenv("DISPLAY"),
		processName: common.ProcessName,
	}
}

// IsAvailable reports whether an X server can be reached
func (d *Detector) IsAvailable() bool {
	if d.display == "" {
		return false
	}
	return d.connect() == nil
}

// GetDisplayServer returns "x11"
func (d *Detector) GetDisplayServer() string {
	return "x11"
}

func (d *Detector) connect() error {
	if d.conn != nil {
		return nil
	}

	conn, err := xgb.NewConnDisplay(d.display)
	if err != nil {
		return fmt.Errorf("failed to connect to X display %q: %w", d.display, err)
	}

	atoms := make(map[string]xproto.Atom, len(atomNames))
	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		atoms[name] = reply.Atom
	}

	d.conn = conn
	d.root = xproto.Setup(conn).DefaultScreen(conn).Root
	d.atoms = atoms
	return nil
}

// GetFocusedWindow returns information about the currently focused window
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	if err := d.connect(); err != nil {
		return nil, err
	}

	win, err := d.activeWindow()
	if err != nil {
		return nil, err
	}

	title := d.windowName(win)
	pid := d.windowPID(win)

	processName := ""
	if pid > 0 {
		if name, err := d.processName(pid); err == nil {
			processName = name
		}
	}
	if processName == "" {
		// Sandboxed clients often hide their PID; WM_CLASS is the next best identity
		instance, class := d.windowClass(win)
		switch {
		case instance != "":
			processName = instance
		case class != "":
			processName = class
		default:
			return nil, fmt.Errorf("could not identify owner of window 0x%x", uint32(win))
		}
	}

	return &window.WindowInfo{
		ProcessName:   processName,
		WindowTitle:   title,
		PID:           pid,
		DisplayServer: "x11",
	}, nil
}

func (d *Detector) property(win xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(d.conn, false, win, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (d *Detector) activeWindow() (xproto.Window, error) {
	data, err := d.property(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil {
		// A broken connection is not recoverable; reconnect on the next poll
		d.Close()
		return 0, fmt.Errorf("failed to read _NET_ACTIVE_WINDOW: %w", err)
	}
	if len(data) >= 4 {
		if win := xproto.Window(binary.LittleEndian.Uint32(data)); win != 0 && d.hasName(win) {
			return win, nil
		}
	}

	focus, err := xproto.GetInputFocus(d.conn).Reply()
	if err != nil {
		d.Close()
		return 0, fmt.Errorf("failed to get input focus: %w", err)
	}
	if focus.Focus == 0 || focus.Focus == d.root || focus.Focus == xproto.InputFocusPointerRoot {
		return 0, fmt.Errorf("no active window found")
	}

	top := d.topLevelParent(focus.Focus)
	if top == 0 || !d.hasName(top) {
		return 0, fmt.Errorf("no active window found")
	}
	return top, nil
}

func (d *Detector) topLevelParent(win xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(d.conn, win).Reply()
		if err != nil || reply.Parent == d.root || reply.Parent == 0 {
			return win
		}
		win = reply.Parent
	}
}

func (d *Detector) hasName(win xproto.Window) bool {
	if data, _ := d.property(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 1); len(data) > 0 {
		return true
	}
	data, _ := d.property(win, d.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

func (d *Detector) windowName(win xproto.Window) string {
	if data, err := d.property(win, d.atoms["_NET_WM_NAME"], d.atoms["UTF8_STRING"], 1024); err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}
	if data, err := d.property(win, d.atoms["WM_NAME"], xproto.AtomString, 1024); err == nil && len(data) > 0 {
		return strings.TrimRight(latin1(data), "\x00")
	}
	return ""
}

// latin1 decodes an ICCCM STRING property, which is ISO-8859-1
func latin1(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func (d *Detector) windowClass(win xproto.Window) (instance, class string) {
	data, err := d.property(win, d.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil {
		return "", ""
	}
	return parseWMClass([]byte(latin1(data)))
}

func (d *Detector) windowPID(win xproto.Window) int {
	data, err := d.property(win, d.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return int(binary.LittleEndian.Uint32(data))
}

// parseWMClass splits the NUL-separated WM_CLASS property into instance and class
func parseWMClass(data []byte) (instance, class string) {
	value := strings.TrimRight(string(data), "\x00")
	if value == "" {
		return "", ""
	}

	parts := strings.Split(value, "\x00")
	instance = parts[0]
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}

// Close releases the X connection
func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}
