package profiling

import (
	"expvar"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"cpu", Config{CPUProfilePath: "cpu.prof"}, true},
		{"mem", Config{MemProfilePath: "mem.prof"}, true},
		{"debug", Config{DebugAddr: "127.0.0.1:0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfilerStartStop(t *testing.T) {
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.prof")
	memPath := filepath.Join(dir, "mem.prof")

	p := New(Config{CPUProfilePath: cpuPath, MemProfilePath: memPath})
	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !p.IsRunning() {
		t.Error("IsRunning() should return true after Start()")
	}
	if err := p.Start(); err == nil {
		t.Error("Start() should fail when already running")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning() should return false after Stop()")
	}

	for _, path := range []string{cpuPath, memPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("profile %s not written: %v", filepath.Base(path), err)
		}
	}
}

func TestProfilerStopWithoutStart(t *testing.T) {
	if err := New(Config{}).Stop(); err == nil {
		t.Error("Stop() should fail when profiler is not running")
	}
}

func TestProfilerBadCPUPath(t *testing.T) {
	p := New(Config{CPUProfilePath: filepath.Join(t.TempDir(), "missing", "cpu.prof")})
	if err := p.Start(); err == nil {
		t.Fatal("expected error for unwritable CPU profile path")
	}
	if p.IsRunning() {
		t.Error("failed Start must leave the profiler stopped")
	}
}

func TestProfilerDebugServer(t *testing.T) {
	expvar.NewInt("profiling_test_counter").Set(7)

	p := New(Config{DebugAddr: "127.0.0.1:0"})
	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer p.Stop()

	addr := p.Addr()
	if addr == "" {
		t.Fatal("Addr() is empty while serving")
	}

	resp, err := http.Get("http://" + addr + "/debug/vars")
	if err != nil {
		t.Fatalf("GET /debug/vars: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `"profiling_test_counter": 7`) {
		t.Errorf("/debug/vars missing counter: %s", body)
	}

	resp, err = http.Get("http://" + addr + "/debug/pprof/")
	if err != nil {
		t.Fatalf("GET /debug/pprof/: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/debug/pprof/ status = %d", resp.StatusCode)
	}
}

func TestWriteHeapProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")
	if err := WriteHeapProfile(path); err != nil {
		t.Fatalf("WriteHeapProfile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
