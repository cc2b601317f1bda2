//go:build linux

package xwin

import (
	"errors"
	"os"
	"testing"
)

func TestRectsPerRequest(t *testing.T) {
	tests := []struct {
		maxLen uint16
		want   int
	}{
		{65535, 32766},
		{4096, 2046},
		{3, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := rectsPerRequest(tt.maxLen); got != tt.want {
			t.Errorf("rectsPerRequest(%d) = %d, want %d", tt.maxLen, got, tt.want)
		}
	}
}

func TestOpenDisplay_Invalid(t *testing.T) {
	_, err := OpenDisplay("/nonexistent/socket/:99")
	if !errors.Is(err, ErrNoDisplay) {
		t.Errorf("OpenDisplay() error = %v, want ErrNoDisplay", err)
	}
}

func TestOpen_LiveServer(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X11 display")
	}

	d, err := Open()
	if err != nil {
		t.Skipf("cannot open display: %v", err)
	}
	defer d.Close()

	if d.Root() == 0 {
		t.Error("Root() = 0")
	}
	if err := d.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
	t.Logf("SHAPE supported: %v, compositor: %s", d.ShapeSupported(), DetectCompositor(d))
}
