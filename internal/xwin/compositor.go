package xwin

import (
	"fmt"
	"os"
	"strings"
)

// CompositorStatus represents the detected compositor state.
type CompositorStatus int

const (
	// CompositorUnknown means we couldn't determine compositor status.
	CompositorUnknown CompositorStatus = iota
	// CompositorActive means a compositor is running (opacity will work).
	CompositorActive
	// CompositorInactive means no compositor detected (opacity is ignored).
	CompositorInactive
)

// String returns a human-readable compositor status.
func (cs CompositorStatus) String() string {
	switch cs {
	case CompositorActive:
		return "active"
	case CompositorInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// DetectCompositor checks for an owner of the _NET_WM_CM_Sn selection, which
// EWMH-compliant compositors acquire for screen n.
func DetectCompositor(d Display) CompositorStatus {
	name := fmt.Sprintf("_NET_WM_CM_S%d", d.Screen())
	atom, err := d.InternAtom(name, false)
	if err != nil || atom == AtomNone {
		return CompositorUnknown
	}

	owner, err := d.SelectionOwner(atom)
	if err != nil {
		return CompositorUnknown
	}
	if owner != 0 {
		return CompositorActive
	}
	return CompositorInactive
}

// IsWayland checks if the current session is running on Wayland.
// The overlay then runs under XWayland and shaping is up to the compositor.
func IsWayland() bool {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// OpacityWarning returns a message when an opacity below 255 will likely be
// ignored, or an empty string when it should take effect.
func OpacityWarning(d Display, opacity uint8) string {
	if opacity == 0xFF || IsWayland() {
		return ""
	}

	switch DetectCompositor(d) {
	case CompositorActive:
		return ""
	case CompositorInactive:
		return "no compositor detected; window opacity requires one (picom, compiz, or a desktop compositor)"
	default:
		return "could not detect compositor status; window opacity may have no effect"
	}
}
