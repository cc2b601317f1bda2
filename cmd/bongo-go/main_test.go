package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/opd-ai/go-bongo/internal/config"
	"github.com/opd-ai/go-bongo/internal/profiling"
	"github.com/opd-ai/go-bongo/pkg/bongo"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-v) = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), Version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunConfigFileNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if code := run([]string{"-c", path}, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "not found") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-nope"}, &stdout, &stderr); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  fps: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", path}, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "window.fps") {
		t.Errorf("stderr = %q, want the validation error", stderr.String())
	}
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-bongo", "config.yaml")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", path, "-init"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-init) = %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != config.DefaultFileContent {
		t.Error("written file differs from the default configuration")
	}

	// A second -init must not overwrite the user's file.
	if code := run([]string{"-c", path, "-init"}, &stdout, &stderr); code != 1 {
		t.Errorf("second run(-init) = %d, want 1", code)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := defaultConfigPath(); got != filepath.Join("/tmp/xdg", "go-bongo", "config.yaml") {
		t.Errorf("defaultConfigPath() = %q", got)
	}
}

func TestStartProfilingDisabled(t *testing.T) {
	p, err := startProfiling(profiling.Config{}, nil, bongo.NopLogger())
	if err != nil || p != nil {
		t.Errorf("startProfiling(empty) = %v, %v; want nil, nil", p, err)
	}
}

func TestStartProfilingCPU(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	p, err := startProfiling(profiling.Config{CPUProfilePath: path}, nil, bongo.NopLogger())
	if err != nil {
		t.Fatalf("startProfiling: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("CPU profile not written: %v", err)
	}
}

func TestRunDumpMask(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 8, 2))
	for x := 0; x < 4; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{A: 0xFF})
		img.SetNRGBA(x, 1, color.NRGBA{A: 0xFF})
	}
	f, err := os.Create(filepath.Join(dir, "img", "bg.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("window:\n  width: 8\n  height: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "shape.pbm")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", cfgPath, "-dump-mask", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-dump-mask) = %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("P4\n8 2\n"), 0b1111_0000, 0b1111_0000)
	if !bytes.Equal(data, want) {
		t.Errorf("shape = %q, want %q", data, want)
	}
}
