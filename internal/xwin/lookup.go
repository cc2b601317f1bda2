package xwin

import "fmt"

// FindWindow returns the managed top-level window belonging to pid, or the
// first one titled title when no client advertises that pid.
//
// The client list comes from _NET_CLIENT_LIST on the root window, which is
// maintained by EWMH window managers.
func FindWindow(d Display, pid int, title string) (WindowID, error) {
	clientList, err := d.InternAtom("_NET_CLIENT_LIST", true)
	if err != nil {
		return 0, fmt.Errorf("intern _NET_CLIENT_LIST: %w", err)
	}
	if clientList == AtomNone {
		return 0, ErrWindowNotFound
	}

	ids, err := d.Cardinals(d.Root(), clientList)
	if err != nil {
		return 0, fmt.Errorf("read client list: %w", err)
	}

	if pid > 0 {
		if pidAtom, err := d.InternAtom("_NET_WM_PID", true); err == nil && pidAtom != AtomNone {
			for _, id := range ids {
				vals, err := d.Cardinals(WindowID(id), pidAtom)
				if err == nil && len(vals) > 0 && int(vals[0]) == pid {
					return WindowID(id), nil
				}
			}
		}
	}

	if title == "" {
		return 0, ErrWindowNotFound
	}

	for _, name := range []string{"_NET_WM_NAME", "WM_NAME"} {
		atom, err := d.InternAtom(name, true)
		if err != nil || atom == AtomNone {
			continue
		}
		for _, id := range ids {
			if got, err := d.Text(WindowID(id), atom); err == nil && got == title {
				return WindowID(id), nil
			}
		}
	}

	return 0, ErrWindowNotFound
}
